package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/render"
)

// Renderer drives the observation form from a terminal. Run prompts every
// field through the form holder and submits; Render prints a static summary
// of a view so the renderer also fits a render.Registry.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	if _, err := ParseOutputFormat(string(r.outputFormat)); err != nil {
		return nil, err
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format Render produces.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// OutputContentType reports the serialization format used by Run.
func (r *Renderer) OutputContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prints the view as a plain-text card without prompting.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString(view.Title + "\n")
	if view.Description != "" {
		b.WriteString(view.Description + "\n")
	}
	b.WriteString("\n")
	for _, message := range opts.FormErrors {
		b.WriteString(r.theme.ErrorPrefix + message + "\n")
	}
	for _, fv := range view.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", fv.Label, fv.Display)
		for _, message := range opts.FieldErrors(fv.Name) {
			fmt.Fprintf(&b, "    %s%s\n", r.theme.ErrorPrefix, message)
		}
	}

	label := view.SubmitLabel
	if opts.Loading && !view.Loading {
		label = form.DefaultPresentation().LoadingLabel
	}
	if view.Disabled || opts.Loading {
		label += " (disabled)"
	}
	b.WriteString("\n[" + label + "]\n")
	return b.Bytes(), nil
}

// Run prompts every field in render order, feeding each answer through the
// holder's update operations and re-prompting on rejected input, then asks
// for confirmation and submits. When isLoading is set nothing is prompted:
// the loading label is printed and form.ErrSubmitting returned. The
// submitted record is returned serialized in the configured output format.
func (r *Renderer) Run(ctx context.Context, f *form.Form, isLoading bool) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	presentation := f.Presentation()
	if isLoading {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+presentation.LoadingLabel); err != nil {
			return nil, err
		}
		return nil, form.ErrSubmitting
	}

	if err := r.info(ctx, presentation.Title); err != nil {
		return nil, err
	}
	if presentation.Description != "" {
		if err := r.info(ctx, presentation.Description); err != nil {
			return nil, err
		}
	}

	for _, fv := range f.View(false).Fields {
		if err := r.promptField(ctx, f, fv); err != nil {
			return nil, err
		}
	}

	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: presentation.SubmitLabel + "?",
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}

	if err := f.Submit(false); err != nil {
		return nil, err
	}

	values := f.Current().Values()
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, fv form.FieldView) error {
	field := observation.Field(fv.Name)
	spec, _ := observation.SpecFor(field)

	for {
		current := fieldValue(f, spec)
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   fv.Label,
			Default:   current,
			Help:      promptHelp(fv, spec),
			Validator: inputValidator(spec),
		})
		if err != nil {
			return err
		}

		if err := f.UpdateField(spec.Field, response); err != nil {
			if msgErr := r.invalid(ctx, fv.Label, err.Error()); msgErr != nil {
				return msgErr
			}
			continue
		}
		if msg := observation.ValidateField(f.Current(), field); msg != "" {
			if msgErr := r.invalid(ctx, fv.Label, msg); msgErr != nil {
				return msgErr
			}
			continue
		}
		if spec.Kind == observation.KindSlider {
			if err := r.info(ctx, "  "+observation.Display(f.Current(), field)); err != nil {
				return err
			}
		}
		return nil
	}
}

func fieldValue(f *form.Form, spec observation.Spec) string {
	switch v := observation.Get(f.Current(), spec.Field).(type) {
	case string:
		return v
	case float64:
		return spec.FormatNumber(v)
	default:
		return ""
	}
}

func promptHelp(fv form.FieldView, spec observation.Spec) string {
	var parts []string
	if fv.Help != "" {
		parts = append(parts, fv.Help)
	}
	if spec.Kind != observation.KindText {
		parts = append(parts, fmt.Sprintf("Range %s to %s, step %s.", fv.Min, fv.Max, fv.Step))
	}
	return strings.Join(parts, " ")
}

func inputValidator(spec observation.Spec) func(string) error {
	if spec.Kind == observation.KindText {
		return nil
	}
	return func(raw string) error {
		_, err := observation.ParseNumeric(raw)
		return err
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) invalid(ctx context.Context, label, msg string) error {
	return r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, label, msg))
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, key := range orderedKeys(values) {
			encoded.Set(key, formatValue(values[key]))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b bytes.Buffer
		for _, key := range orderedKeys(values) {
			fmt.Fprintf(&b, "%s: %s\n", prettyLabel(key), prettyValue(key, values[key]))
		}
		return b.Bytes(), nil
	default:
		return marshalOrdered(values)
	}
}

// marshalOrdered encodes values as an indented JSON object whose keys follow
// orderedKeys, matching the other output formats.
func marshalOrdered(values map[string]any) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range orderedKeys(values) {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(values[key])
		if err != nil {
			return nil, fmt.Errorf("tui: encode %s: %w", key, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, b.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// orderedKeys lists record fields in render order followed by any keys a
// transformer added, sorted.
func orderedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, f := range observation.Fields() {
		if _, ok := values[string(f)]; ok {
			keys = append(keys, string(f))
			seen[string(f)] = struct{}{}
		}
	}
	var extra []string
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

func prettyLabel(key string) string {
	if spec, ok := observation.SpecFor(observation.Field(key)); ok {
		return spec.LabelWithUnit()
	}
	return key
}

func prettyValue(key string, v any) string {
	spec, ok := observation.SpecFor(observation.Field(key))
	n, isNumber := v.(float64)
	if !ok || !isNumber {
		return formatValue(v)
	}
	return spec.FormatNumber(n) + spec.Suffix
}
