// Package session wires the form pipeline end to end: instantiate a
// definition, mount widgets, hand the form to a renderer, and dispatch the
// resulting lifecycle event to host handlers.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/render"
	"github.com/goliatone/go-forms/pkg/widgets"
)

const defaultRendererName = "tui"

// SubmitHandler reacts to a submitted form.
type SubmitHandler func(event forms.Submitted) error

// CancelHandler reacts to a cancelled form.
type CancelHandler func(event forms.Cancelled) error

// Option customises the session configuration.
type Option func(*Session)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithRenderer registers a renderer on the session's registry.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Session) {
		s.pending = append(s.pending, renderer)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.defaultRenderer = name
		}
	}
}

// WithWidgets injects the widget registry used to mount forms.
func WithWidgets(registry *widgets.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.widgets = registry
		}
	}
}

// OnSubmit appends a handler invoked for every submitted outcome.
func OnSubmit(handler SubmitHandler) Option {
	return func(s *Session) {
		if handler != nil {
			s.onSubmit = append(s.onSubmit, handler)
		}
	}
}

// OnCancel appends a handler invoked for every cancelled outcome.
func OnCancel(handler CancelHandler) Option {
	return func(s *Session) {
		if handler != nil {
			s.onCancel = append(s.onCancel, handler)
		}
	}
}

// Session owns the renderer and widget registries and runs form lifecycles.
// It is safe for concurrent Run calls; each call works on a fresh form
// instance.
type Session struct {
	registry        *render.Registry
	widgets         *widgets.Registry
	defaultRenderer string
	onSubmit        []SubmitHandler
	onCancel        []CancelHandler

	pending []render.Renderer
}

// New constructs a session. Renderers supplied through WithRenderer are
// registered eagerly so duplicate names fail here rather than mid-run.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		registry:        render.NewRegistry(),
		widgets:         widgets.Defaults(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for _, renderer := range s.pending {
		if renderer == nil {
			continue
		}
		if err := s.registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	s.pending = nil
	return s, nil
}

// Request describes one form lifecycle.
type Request struct {
	// Definition is the flattened template to instantiate. Required.
	Definition *forms.Definition
	// Renderer selects a registered renderer; empty uses the default.
	Renderer string
	// Title is the instance's display title.
	Title string
	// Data pre-populates fields by flattened name.
	Data map[string]any
	// FieldOrder overrides the presentation order.
	FieldOrder []string
}

// Run executes one full form lifecycle and returns the renderer's outcome.
// Structural failures (missing definition, unknown renderer, mount errors)
// return an error; user cancellation is a normal outcome, not an error.
func (s *Session) Run(ctx context.Context, req Request) (render.Outcome, error) {
	if ctx == nil {
		return render.Outcome{}, errors.New("session: context is required")
	}
	if req.Definition == nil {
		return render.Outcome{}, errors.New("session: definition is required")
	}

	name := req.Renderer
	if name == "" {
		name = s.defaultRenderer
	}
	renderer, err := s.registry.Get(name)
	if err != nil {
		return render.Outcome{}, err
	}

	var formOpts []forms.FormOption
	if req.Title != "" {
		formOpts = append(formOpts, forms.WithTitle(req.Title))
	}
	if req.Data != nil {
		formOpts = append(formOpts, forms.WithData(req.Data))
	}
	if req.FieldOrder != nil {
		formOpts = append(formOpts, forms.WithFieldOrder(req.FieldOrder...))
	}

	form := req.Definition.New(formOpts...)
	if err := form.Mount(s.widgets); err != nil {
		return render.Outcome{}, err
	}

	outcome, err := renderer.Render(ctx, form, render.Options{})
	if err != nil {
		return render.Outcome{}, err
	}

	if err := s.dispatch(outcome); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (s *Session) dispatch(outcome render.Outcome) error {
	switch outcome.Status {
	case render.StatusSubmitted:
		event := forms.Submitted{Form: outcome.Form, Data: outcome.Data}
		for _, handler := range s.onSubmit {
			if err := handler(event); err != nil {
				return fmt.Errorf("session: submit handler: %w", err)
			}
		}
	case render.StatusCancelled:
		event := forms.Cancelled{Form: outcome.Form}
		for _, handler := range s.onCancel {
			if err := handler(event); err != nil {
				return fmt.Errorf("session: cancel handler: %w", err)
			}
		}
	}
	return nil
}
