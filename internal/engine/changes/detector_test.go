package changes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports/mocks"
	"go.trai.ch/hotload/internal/engine/changes"
	"go.uber.org/mock/gomock"
)

// fakeClock is a ModTimeSource backed by a map.
type fakeClock map[string]int64

func (f fakeClock) ModTime(origin string) (int64, error) {
	return f[origin], nil
}

func units() []domain.SourceUnit {
	return []domain.SourceUnit{
		{ID: domain.NewModuleID("app.a"), Origin: "src/app/a.src"},
		{ID: domain.NewModuleID("app.b"), Origin: "src/app/b.src"},
		{ID: domain.NewModuleID("lib.vendor"), Origin: "file:///deps/vendor.js", Foreign: true},
	}
}

func ids(in []domain.ModuleID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = id.String()
	}
	return out
}

func TestDetector_FirstCycleEmitsEverything(t *testing.T) {
	clock := fakeClock{"src/app/a.src": 10, "src/app/b.src": 20, "file:///deps/vendor.js": 5}
	d := changes.NewDetector(clock, nil, mocks.NewMockLogger(gomock.NewController(t)))

	assert.Equal(t, []string{"app.a", "app.b", "lib.vendor"}, ids(d.Detect(units())))
	assert.Equal(t, int64(20), d.Watermark("src/app/b.src"))
}

func TestDetector_Idempotent(t *testing.T) {
	clock := fakeClock{"src/app/a.src": 10, "src/app/b.src": 20}
	d := changes.NewDetector(clock, nil, mocks.NewMockLogger(gomock.NewController(t)))

	require.NotEmpty(t, d.Detect(units()))
	assert.Empty(t, d.Detect(units()))
}

func TestDetector_StrictlyNewer(t *testing.T) {
	clock := fakeClock{"src/app/a.src": 10, "src/app/b.src": 20}
	d := changes.NewDetector(clock, nil, mocks.NewMockLogger(gomock.NewController(t)))
	d.Prime(units())

	clock["src/app/a.src"] = 10
	clock["src/app/b.src"] = 21
	assert.Equal(t, []string{"app.b"}, ids(d.Detect(units())))
	assert.Equal(t, int64(10), d.Watermark("src/app/a.src"))
	assert.Equal(t, int64(21), d.Watermark("src/app/b.src"))
}

func TestDetector_WatermarkNeverMovesBackwards(t *testing.T) {
	clock := fakeClock{"src/app/a.src": 50}
	d := changes.NewDetector(clock, nil, mocks.NewMockLogger(gomock.NewController(t)))
	d.Prime(units())

	clock["src/app/a.src"] = 30
	assert.Empty(t, d.Detect(units()))
	d.Prime(units())
	assert.Equal(t, int64(50), d.Watermark("src/app/a.src"))
}

func TestDetector_SharedOriginEmitsEveryUnit(t *testing.T) {
	clock := fakeClock{"bundle.js": 7}
	in := []domain.SourceUnit{
		{ID: domain.NewModuleID("dep.one"), Origin: "bundle.js", Foreign: true},
		{ID: domain.NewModuleID("dep.two"), Origin: "bundle.js", Foreign: true},
	}
	d := changes.NewDetector(clock, nil, mocks.NewMockLogger(gomock.NewController(t)))

	assert.Equal(t, []string{"dep.one", "dep.two"}, ids(d.Detect(in)))
}

func TestDetector_StatFailureIsLoggedAndSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockModTimeSource(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	source.EXPECT().ModTime("src/app/a.src").Return(int64(0), errors.New("permission denied"))
	source.EXPECT().ModTime("src/app/b.src").Return(int64(3), nil)
	source.EXPECT().ModTime("file:///deps/vendor.js").Return(int64(0), nil)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "permission denied")
	})

	d := changes.NewDetector(source, nil, logger)
	assert.Equal(t, []string{"app.b"}, ids(d.Detect(units())))
}

func TestDetector_PersistsWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockWatermarkStore(ctrl)
	clock := fakeClock{"src/app/a.src": 10, "src/app/b.src": 20}

	store.EXPECT().Load().Return(map[string]int64{"src/app/a.src": 10}, nil)
	store.EXPECT().Save(map[string]int64{"src/app/a.src": 10, "src/app/b.src": 20}).Return(nil)

	d := changes.NewDetector(clock, store, mocks.NewMockLogger(ctrl))
	assert.Equal(t, []string{"app.b"}, ids(d.Detect(units())))

	// Nothing changed, nothing saved.
	assert.Empty(t, d.Detect(units()))
}

func TestDetector_StoreFailuresAreBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockWatermarkStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	clock := fakeClock{"src/app/a.src": 10}

	store.EXPECT().Load().Return(nil, errors.New("corrupt"))
	store.EXPECT().Save(gomock.Any()).Return(errors.New("disk full"))
	logger.EXPECT().Error(gomock.Any()).Times(2)

	d := changes.NewDetector(clock, store, logger)
	assert.Equal(t, []string{"app.a"}, ids(d.Detect(units()[:1])))
}

func TestDetector_Seeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockWatermarkStore(ctrl)
	store.EXPECT().Load().Return(map[string]int64{"src/app/a.src": 10}, nil)

	d := changes.NewDetector(fakeClock{}, store, mocks.NewMockLogger(ctrl))
	assert.True(t, d.Seeded())

	fresh := changes.NewDetector(fakeClock{"src/app/a.src": 10}, nil, nil)
	assert.False(t, fresh.Seeded())
	fresh.Prime(units()[:1])
	assert.True(t, fresh.Seeded())
}

func TestDetector_UnitWithoutOriginIsLoggedAndSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("not tracked, unit has no origin: app.generated")

	in := []domain.SourceUnit{
		{ID: domain.NewModuleID("app.a"), Origin: "src/app/a.src"},
		{ID: domain.NewModuleID("app.generated")},
	}
	d := changes.NewDetector(fakeClock{"src/app/a.src": 1}, nil, logger)
	assert.Equal(t, []string{"app.a"}, ids(d.Detect(in)))
}
