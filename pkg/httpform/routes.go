package httpform

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-fireform/pkg/form"
)

// SchemaSuffix is appended to the form route to serve the record schema.
const SchemaSuffix = "/schema.json"

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the form and schema handlers under basePath on
// mux and returns the form pattern.
func RegisterRoutes(mux Mux, basePath string, onSubmit form.SubmitFunc, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, onSubmit, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the handlers using a pre-built Options
// value.
func RegisterRoutesWithOptions(mux Mux, basePath string, onSubmit form.SubmitFunc, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("httpform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	h, err := HandlerWithOptions(onSubmit, opts)
	if err != nil {
		return "", err
	}
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, h)
	mux.Handle(strings.TrimRight(pattern, "/")+SchemaSuffix, SchemaHandler())
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
