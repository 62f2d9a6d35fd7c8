package widgets

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-forms/pkg/forms"
)

// Registry maps field kinds to widget factories. It satisfies
// forms.WidgetMounter so a form can be mounted directly against it. An empty
// registry never produces a widget.
type Registry struct {
	mu        sync.RWMutex
	factories map[forms.Kind]forms.WidgetFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[forms.Kind]forms.WidgetFactory),
	}
}

// Defaults returns a registry with the built-in value holders registered for
// every field kind.
func Defaults() *Registry {
	reg := NewRegistry()
	reg.Register(forms.KindString, func(field *forms.Field) (forms.Widget, error) {
		return NewInput(field), nil
	})
	reg.Register(forms.KindText, func(field *forms.Field) (forms.Widget, error) {
		return NewTextArea(field), nil
	})
	reg.Register(forms.KindInteger, func(field *forms.Field) (forms.Widget, error) {
		return NewIntegerInput(field), nil
	})
	reg.Register(forms.KindBoolean, func(field *forms.Field) (forms.Widget, error) {
		return NewCheckbox(field), nil
	})
	reg.Register(forms.KindChoice, func(field *forms.Field) (forms.Widget, error) {
		return NewSelectBox(field), nil
	})
	return reg
}

// Register installs a factory for a kind, replacing any previous one.
func (r *Registry) Register(kind forms.Kind, factory forms.WidgetFactory) {
	if r == nil || kind == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Create implements forms.WidgetMounter. A kind with no registered factory
// is a structural misconfiguration and fails with a FieldError.
func (r *Registry) Create(field *forms.Field) (forms.Widget, error) {
	if field == nil {
		return nil, &forms.FieldError{Message: "widgets: field is required"}
	}

	r.mu.RLock()
	factory, ok := r.factories[field.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, &forms.FieldError{
			Message: fmt.Sprintf("no widget factory registered for kind %q (field %q)", field.Kind, field.Name()),
		}
	}
	return factory(field)
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []forms.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]forms.Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Has reports whether a factory is registered for the kind.
func (r *Registry) Has(kind forms.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}
