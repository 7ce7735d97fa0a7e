package httpform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/render"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

// SubmittedParam is the query parameter set on the redirect after an
// accepted submission.
const SubmittedParam = "submitted"

const submittedNotice = "Simulation submitted."

type handler struct {
	opts     Options
	onSubmit form.SubmitFunc
	formOpts []form.Option
	renderer render.Renderer
}

// NewHandler builds the form handler with default options plus any overrides.
func NewHandler(onSubmit form.SubmitFunc, fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(onSubmit, NewOptions(fns...))
}

// HandlerWithOptions builds the form handler from a pre-constructed Options
// value. onSubmit receives every accepted record.
func HandlerWithOptions(onSubmit form.SubmitFunc, opts Options) (http.Handler, error) {
	if onSubmit == nil {
		return nil, fmt.Errorf("httpform: %w", form.ErrMissingCallback)
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	h := &handler{opts: opts, onSubmit: onSubmit, renderer: opts.Renderer}
	if h.renderer == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("httpform: default renderer: %w", err)
		}
		h.renderer = renderer
	}

	store := opts.UISchema
	if store == nil {
		loaded, err := uischema.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("httpform: %w", err)
		}
		store = loaded
	}
	schemaOpts, err := uischema.NewDecorator(store).Options(opts.FormID)
	if err != nil {
		return nil, fmt.Errorf("httpform: %w", err)
	}
	h.formOpts = append(schemaOpts, opts.Form...)

	if _, err := h.newForm(); err != nil {
		return nil, fmt.Errorf("httpform: %w", err)
	}
	return h, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	if r.Method == http.MethodPost {
		h.servePost(w, r)
		return
	}
	h.serveForm(w, r)
}

func (h *handler) serveForm(w http.ResponseWriter, r *http.Request) {
	f, err := h.newForm()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	loading := h.loading(r)
	opts := h.renderOptions(r, loading)
	if r.URL.Query().Get(SubmittedParam) != "" {
		opts.Notice = submittedNotice
	}
	h.write(w, r, http.StatusOK, f.View(loading), opts)
}

func (h *handler) servePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	f, err := h.newForm()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rejected, fieldErrs := applyValues(f, r.PostForm)
	loading := h.loading(r)
	opts := h.renderOptions(r, loading)

	if loading {
		mapping := render.MapSubmitError(f.Submit(true))
		opts.FormErrors = mapping.Form
		h.reject(r, RejectBusy)
		h.write(w, r, http.StatusConflict, withRaw(f.View(true), rejected), opts)
		return
	}

	if len(fieldErrs) > 0 {
		opts.Errors = fieldErrs
		h.reject(r, RejectInput)
		h.write(w, r, http.StatusUnprocessableEntity, withRaw(f.View(false), rejected), opts)
		return
	}

	if err := f.Submit(false); err != nil {
		var verrs observation.ValidationErrors
		if !errors.As(err, &verrs) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		mapping := render.MapSubmitError(err)
		opts.Errors = mapping.Fields
		opts.FormErrors = mapping.Form
		h.reject(r, RejectValidation)
		h.write(w, r, http.StatusUnprocessableEntity, f.View(false), opts)
		return
	}

	if h.opts.Rerender {
		opts.Notice = submittedNotice
		h.write(w, r, http.StatusOK, f.View(false), opts)
		return
	}
	http.Redirect(w, r, r.URL.Path+"?"+SubmittedParam+"=1", http.StatusSeeOther)
}

func (h *handler) newForm() (*form.Form, error) {
	return form.New(h.onSubmit, h.formOpts...)
}

func (h *handler) loading(r *http.Request) bool {
	return h.opts.Loading != nil && h.opts.Loading(r)
}

func (h *handler) reject(r *http.Request, reason string) {
	if h.opts.Rejected != nil {
		h.opts.Rejected(r, reason)
	}
}

func (h *handler) renderOptions(r *http.Request, loading bool) render.Options {
	opts := render.Options{
		Loading: loading,
		Action:  r.URL.Path,
		Method:  http.MethodPost,
	}
	if h.opts.Hidden != nil {
		opts.Hidden = render.MergeHiddenFields(h.opts.Hidden(r))
	}
	return opts
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, status int, view form.View, opts render.Options) {
	body, err := h.renderer.Render(r.Context(), view, opts)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// applyValues feeds every submitted field through the holder's update
// operations. Fields absent from the body keep their current value. It
// returns the raw text of rejected fields and the message for each.
func applyValues(f *form.Form, values map[string][]string) (map[string]string, map[string][]string) {
	var (
		rejected map[string]string
		errs     map[string][]string
	)
	for _, spec := range observation.Specs() {
		name := string(spec.Field)
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := f.UpdateField(spec.Field, raw[0]); err != nil {
			if rejected == nil {
				rejected = make(map[string]string)
				errs = make(map[string][]string)
			}
			rejected[name] = raw[0]
			errs[name] = []string{updateMessage(spec, err)}
		}
	}
	return rejected, errs
}

func updateMessage(spec observation.Spec, err error) string {
	switch {
	case errors.Is(err, observation.ErrNotANumber):
		return "must be a number"
	case errors.Is(err, form.ErrOutOfRange):
		return fmt.Sprintf("must be between %s and %s",
			strconv.FormatFloat(spec.Min, 'f', -1, 64),
			strconv.FormatFloat(spec.Max, 'f', -1, 64))
	case errors.Is(err, form.ErrOffStep):
		return "must be a multiple of " + strconv.FormatFloat(spec.Step, 'f', -1, 64)
	default:
		return err.Error()
	}
}

// withRaw shows rejected input back to the user in place of the retained
// value.
func withRaw(view form.View, rejected map[string]string) form.View {
	if len(rejected) == 0 {
		return view
	}
	fields := make([]form.FieldView, len(view.Fields))
	copy(fields, view.Fields)
	for i := range fields {
		if raw, ok := rejected[fields[i].Name]; ok {
			fields[i].Value = raw
		}
	}
	view.Fields = fields
	return view
}

// SchemaHandler serves the record schema as JSON.
func SchemaHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(observation.Schema())
	})
}
