package forms

// Result is the outcome of a widget-level validation pass: a plain pass, or a
// failure carrying an ordered list of human-readable messages.
type Result struct {
	Valid    bool
	Messages []string
}

// Pass returns a passing Result.
func Pass() Result {
	return Result{Valid: true}
}

// Fail returns a failing Result with the supplied messages.
func Fail(messages ...string) Result {
	return Result{Messages: messages}
}

// Widget is the value-holder contract the rendering layer must satisfy for
// every field: a gettable/settable raw value plus a validate hook. The core
// never inspects how a widget is drawn.
type Widget interface {
	// Value returns the widget's current raw value.
	Value() any
	// SetValue replaces the widget's raw value.
	SetValue(value any)
	// Validate checks the supplied raw value against the widget's own rules
	// (typically the validators seeded from its field at mount time).
	Validate(value any) Result
}

// WidgetFactory produces the widget bound to a field when a form is mounted.
type WidgetFactory func(field *Field) (Widget, error)

// WidgetMounter is satisfied by widget registries: given a field it produces
// exactly one bindable value holder, or fails with a FieldError when no
// factory covers the field's kind.
type WidgetMounter interface {
	Create(field *Field) (Widget, error)
}
