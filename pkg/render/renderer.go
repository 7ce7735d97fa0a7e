package render

import (
	"context"

	"github.com/goliatone/go-fireform/pkg/form"
)

// Renderer turns a form snapshot into a byte representation (HTML, terminal
// transcript, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options Options) ([]byte, error)
}
