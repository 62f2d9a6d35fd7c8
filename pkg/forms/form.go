package forms

import (
	"fmt"

	"github.com/google/uuid"
)

// FormOption customises a form instantiation.
type FormOption func(*Form)

// WithTitle sets the form's display title.
func WithTitle(title string) FormOption {
	return func(f *Form) {
		f.title = title
	}
}

// WithData supplies initial values applied at construction. Keys that do not
// name a field are ignored.
func WithData(data map[string]any) FormOption {
	return func(f *Form) {
		f.initial = data
	}
}

// WithFieldOrder moves the named fields to the front in the given order;
// remaining fields keep their prior relative order.
func WithFieldOrder(order ...string) FormOption {
	return func(f *Form) {
		f.order = order
	}
}

// Form is a live instance of a definition. It owns a private deep copy of
// the flattened field set, so mutating one instance never affects a sibling
// built from the same template. Instances are never reset or reused: a fresh
// one is created to restart the submit/cancel cycle.
type Form struct {
	id      string
	def     *Definition
	title   string
	fields  []*Field
	index   map[string]int
	initial map[string]any
	order   []string
	mounted bool
}

// New instantiates the definition: deep-copies the template fields, applies
// the optional field-order override, binds each field's name and form
// back-reference, then pushes any initial data.
func (d *Definition) New(opts ...FormOption) *Form {
	form := &Form{
		id:  uuid.NewString(),
		def: d,
	}

	form.fields = make([]*Field, len(d.fields))
	for i, field := range d.fields {
		form.fields[i] = field.Clone()
	}

	for _, opt := range opts {
		if opt != nil {
			opt(form)
		}
	}

	form.OrderFields(form.order)

	for _, field := range form.fields {
		field.form = form
	}

	if form.initial != nil {
		form.SetData(form.initial)
	}

	return form
}

// ID returns the instance identifier, unique per instantiation.
func (f *Form) ID() string {
	return f.id
}

// Title returns the form's display title.
func (f *Form) Title() string {
	return f.title
}

// Definition returns the template this instance was built from.
func (f *Form) Definition() *Definition {
	return f.def
}

// Fields returns the instance's live fields in their current order.
func (f *Form) Fields() []*Field {
	return append([]*Field(nil), f.fields...)
}

// FieldNames returns the field names in their current order.
func (f *Form) FieldNames() []string {
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.name
	}
	return names
}

// Meta returns the composition metadata for a field name.
func (f *Form) Meta(name string) (Meta, bool) {
	return f.def.Meta(name)
}

// Mounted reports whether widgets have been attached.
func (f *Form) Mounted() bool {
	return f.mounted
}

// Field resolves a field by exact or unqualified name. A miss returns
// (nil, nil); an unqualified name matching several fields returns an
// AmbiguousFieldError for the caller to handle.
func (f *Form) Field(name string) (*Field, error) {
	idx, err := resolveName(f.FieldNames(), f.index, name)
	if err != nil || idx < 0 {
		return nil, err
	}
	return f.fields[idx], nil
}

// OrderFields applies a field-order override: listed names first, in the
// given order, remaining fields appended preserving their prior relative
// order. A nil order is a no-op beyond rebuilding the index.
func (f *Form) OrderFields(order []string) {
	if order != nil {
		f.index = indexFields(f.fields)
		reordered := make([]*Field, 0, len(f.fields))
		taken := make(map[string]struct{}, len(order))

		for _, name := range order {
			idx, ok := f.index[name]
			if !ok {
				continue
			}
			if _, dup := taken[name]; dup {
				continue
			}
			taken[name] = struct{}{}
			reordered = append(reordered, f.fields[idx])
		}
		for _, field := range f.fields {
			if _, ok := taken[field.name]; ok {
				continue
			}
			reordered = append(reordered, field)
		}
		f.fields = reordered
	}

	f.index = indexFields(f.fields)
}

// Data returns every field's current domain value keyed by field name.
func (f *Form) Data() map[string]any {
	data := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		data[field.name] = field.Value()
	}
	return data
}

// SetData pushes values into the named fields. Unknown keys are silently
// ignored so oversized maps can be passed through.
func (f *Form) SetData(data map[string]any) {
	for name, value := range data {
		idx, ok := f.index[name]
		if !ok {
			continue
		}
		f.fields[idx].SetValue(value)
	}
}

// Mount creates and binds one widget per field using the supplied mounter,
// seeding each widget with the field's default. A field kind with no factory
// is a structural failure surfaced as a FieldError.
func (f *Form) Mount(mounter WidgetMounter) error {
	if mounter == nil {
		return &FieldError{Message: fmt.Sprintf("form %q: widget mounter is required", f.def.name)}
	}
	for _, field := range f.fields {
		widget, err := mounter.Create(field)
		if err != nil {
			return err
		}
		if widget == nil {
			return &FieldError{Message: fmt.Sprintf("form %q: no widget produced for field %q", f.def.name, field.name)}
		}
		widget.SetValue(field.ToRaw(field.Default))
		field.Bind(widget)
	}
	f.mounted = true
	return nil
}

// Validate runs the two-phase validation over every field in order: the
// widget's own validate hook plus the field's conversion and constraint
// checks, with messages aggregated per field. Every field is always checked;
// an early failure never skips later fields. Previous errors are cleared
// before each pass.
func (f *Form) Validate() bool {
	ok := true
	for _, field := range f.fields {
		field.errors = nil
		var messages []string

		raw := field.rawValue()
		if field.widget != nil {
			if res := field.widget.Validate(raw); !res.Valid {
				messages = append(messages, res.Messages...)
			}
		} else {
			messages = append(messages, field.checkValidators(raw)...)
		}

		domain, err := field.ToDomain(raw)
		if err != nil {
			messages = append(messages, err.Error())
		} else if err := field.Validate(domain); err != nil {
			messages = append(messages, err.Error())
		}

		field.errors = normalizeMessages(messages)
		if len(field.errors) > 0 {
			ok = false
		}
	}
	return ok
}

// Errors returns the per-field messages accumulated by the last Validate
// pass, keyed by field name. Fields without errors are omitted.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	for _, field := range f.fields {
		if len(field.errors) > 0 {
			out[field.name] = append([]string(nil), field.errors...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func indexFields(fields []*Field) map[string]int {
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.name] = i
	}
	return index
}
