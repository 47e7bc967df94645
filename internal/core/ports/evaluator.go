package ports

import "context"

// Evaluator is the remote evaluation channel into the client runtime.
//
//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type Evaluator interface {
	// Evaluate runs code in the client runtime and returns its printed result.
	// It blocks until the runtime answers or ctx is done.
	Evaluate(ctx context.Context, code string) (string, error)
}
