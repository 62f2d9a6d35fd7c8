package render

import (
	"context"

	"github.com/goliatone/go-forms/pkg/forms"
)

// Status is the terminal state of a rendered form instance.
type Status string

const (
	// StatusSubmitted means the form passed validation and the user
	// confirmed submission.
	StatusSubmitted Status = "submitted"
	// StatusCancelled means the user abandoned the form; its data carries no
	// validity guarantee.
	StatusCancelled Status = "cancelled"
)

// Outcome is what a renderer hands back to the host once the form's
// lifecycle ends. Data is only populated for submitted outcomes.
type Outcome struct {
	Status Status
	Form   *forms.Form
	Data   map[string]any
}

// Options carries per-render data renderers can use without mutating the
// definition pipeline.
type Options struct {
	// Values pre-populates fields by flattened name before interaction
	// begins. Unknown names are ignored.
	Values map[string]any
	// FieldOrder overrides the presentation order: listed names first, the
	// rest in their prior relative order.
	FieldOrder []string
}

// Renderer binds a form instance to a concrete surface, drives the user
// interaction, and reports the terminal outcome. Implementations must check
// ctx before blocking operations.
type Renderer interface {
	Name() string
	Render(ctx context.Context, form *forms.Form, opts Options) (Outcome, error)
}
