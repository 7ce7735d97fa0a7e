package orchestrator

import (
	"context"

	"github.com/goliatone/go-fireform/pkg/form"
)

// Transformer mutates a form View after the UI schema is applied and before
// rendering. Implementations can reorder fields, rewrite captions, or drop
// icons for a given output.
type Transformer interface {
	Transform(ctx context.Context, view *form.View) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, view *form.View) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, view *form.View) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view)
}
