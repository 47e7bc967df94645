// Package dispatcher sends reload commands and diagnostics to the client runtime.
package dispatcher

import (
	"context"
	"fmt"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Dispatcher serializes reload plans and diagnostics and evaluates them remotely.
// It caches the fingerprint of the last successfully delivered requirement mapping.
// It is not safe for concurrent use.
type Dispatcher struct {
	evaluator ports.Evaluator
	tracer    ports.Tracer
	logger    ports.Logger
	excerpts  ports.ExcerptSource

	delivered    uint64
	hasDelivered bool
}

// New creates a Dispatcher. excerpts may be nil.
func New(evaluator ports.Evaluator, tracer ports.Tracer, logger ports.Logger, excerpts ports.ExcerptSource) *Dispatcher {
	return &Dispatcher{
		evaluator: evaluator,
		tracer:    tracer,
		logger:    logger,
		excerpts:  excerpts,
	}
}

// Dispatch sends plan to the client. When the requirement mapping of g differs from the one
// last delivered, the dependency delivery script is prepended. An empty plan sends nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, g *domain.Graph, plan domain.ReloadPlan) (err error) {
	if plan.Empty() {
		return nil
	}

	ctx, span := d.tracer.Start(ctx, "dispatch.reload")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	payload, err := ReloadPayload(plan)
	if err != nil {
		return zerr.Wrap(err, "failed to encode reload payload")
	}

	fingerprint := Fingerprint(g)
	deliver := !d.hasDelivered || fingerprint != d.delivered
	if deliver {
		script, scriptErr := DeliveryScript(g)
		if scriptErr != nil {
			return zerr.Wrap(scriptErr, "failed to encode dependency delivery")
		}
		payload = script + payload
	}
	span.SetAttribute("hotload.modules", len(plan.Modules))
	span.SetAttribute("hotload.delivery", deliver)
	d.tracer.EmitPlan(ctx, plan.MangledModules())

	if err := d.evaluate(ctx, domain.EntryReload, payload); err != nil {
		return err
	}
	if deliver {
		d.delivered = fingerprint
		d.hasDelivered = true
	}
	d.logger.Info(fmt.Sprintf("reloaded %d module(s)", len(plan.Modules)))
	return nil
}

// DispatchWarnings sends warnings to the client overlay.
func (d *Dispatcher) DispatchWarnings(ctx context.Context, warnings []domain.Warning) (err error) {
	ctx, span := d.tracer.Start(ctx, "dispatch.warnings")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()
	span.SetAttribute("hotload.warnings", len(warnings))

	withExcerpts := make([]domain.Warning, len(warnings))
	for i, w := range warnings {
		if w.Excerpt == nil {
			w.Excerpt = d.excerpt(w.Location)
		}
		withExcerpts[i] = w
	}

	payload, err := WarningsPayload(withExcerpts)
	if err != nil {
		return zerr.Wrap(err, "failed to encode warnings payload")
	}
	return d.evaluate(ctx, domain.EntryWarnings, payload)
}

// DispatchException sends a compile exception to the client overlay.
func (d *Dispatcher) DispatchException(ctx context.Context, exc domain.Exception) (err error) {
	ctx, span := d.tracer.Start(ctx, "dispatch.exception")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if exc.Excerpt == nil {
		exc.Excerpt = d.excerpt(exc.Location)
	}
	payload, err := ExceptionPayload(exc)
	if err != nil {
		return zerr.Wrap(err, "failed to encode exception payload")
	}
	return d.evaluate(ctx, domain.EntryException, payload)
}

// evaluate runs payload remotely. Failures are logged and returned, never retried.
func (d *Dispatcher) evaluate(ctx context.Context, entry, payload string) error {
	result, err := d.evaluator.Evaluate(ctx, payload)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrEvaluationFailed.Error()), "entry", entry)
		d.logger.Error(err)
		return err
	}
	if result != "" {
		d.logger.Debug(entry + " => " + result)
	}
	return nil
}

func (d *Dispatcher) excerpt(loc domain.Location) *domain.FileExcerpt {
	if d.excerpts == nil || loc.File == "" {
		return nil
	}
	return d.excerpts.Excerpt(loc)
}
