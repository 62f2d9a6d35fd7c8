package forms

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-forms/pkg/validators"
)

// Kind tags the field variants. Text is the string variant with a multiline
// flag, not a separate conversion path.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindChoice  Kind = "choice"
	KindText    Kind = "text"
)

// Choice pairs a stored value with its display label.
type Choice struct {
	Value string
	Label string
}

// Field is a typed unit of form data: a declaration-time template that the
// composition resolver copies into flattened definitions and that each Form
// instance deep-copies again for isolation. Constraint fields only apply to
// the kinds that understand them.
type Field struct {
	Kind      Kind
	Label     string
	HelpText  string
	Required  bool
	Multiline bool

	MinLength *int
	MaxLength *int
	MinValue  *int
	MaxValue  *int
	Choices   []Choice

	Validators []validators.Validator

	// Default seeds the widget at mount time and stands in for the live
	// value while the field is unbound.
	Default any

	name   string
	form   *Form
	widget Widget
	errors []string
}

// String declares a single-line string field.
func String(name, label string, opts ...FieldOption) *Field {
	return newField(KindString, name, label, opts...)
}

// Text declares a multi-line string field. It shares the string conversion
// and constraint path.
func Text(name, label string, opts ...FieldOption) *Field {
	field := newField(KindText, name, label, opts...)
	field.Multiline = true
	return field
}

// Integer declares an integer field.
func Integer(name, label string, opts ...FieldOption) *Field {
	return newField(KindInteger, name, label, opts...)
}

// Boolean declares a boolean field.
func Boolean(name, label string, opts ...FieldOption) *Field {
	return newField(KindBoolean, name, label, opts...)
}

// Select declares a choice field restricted to the supplied choice set.
func Select(name, label string, choices []Choice, opts ...FieldOption) *Field {
	field := newField(KindChoice, name, label, opts...)
	field.Choices = append([]Choice(nil), choices...)
	return field
}

func newField(kind Kind, name, label string, opts ...FieldOption) *Field {
	field := &Field{
		Kind:  kind,
		Label: label,
		name:  strings.TrimSpace(name),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(field)
		}
	}
	return field
}

// Name returns the field's identifier within its flattened set. Composition
// rewrites it when a prefix applies.
func (f *Field) Name() string {
	return f.name
}

// Form returns the owning form instance, nil for template fields.
func (f *Field) Form() *Form {
	return f.form
}

// Widget returns the bound value holder, nil before mounting.
func (f *Field) Widget() Widget {
	return f.widget
}

// Bind attaches the widget produced by the rendering layer.
func (f *Field) Bind(w Widget) {
	f.widget = w
}

// Errors returns the messages accumulated by the last validation pass.
func (f *Field) Errors() []string {
	return f.errors
}

// DisplayName returns the label when present, the field name otherwise.
func (f *Field) DisplayName() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.name
}

// formItem marks *Field as a definition item.
func (f *Field) formItem() {}

// Clone deep-copies the declaration, dropping form and widget bindings so
// sibling definitions and instances never share mutable state.
func (f *Field) Clone() *Field {
	clone := *f
	clone.form = nil
	clone.widget = nil
	clone.errors = nil
	clone.MinLength = cloneInt(f.MinLength)
	clone.MaxLength = cloneInt(f.MaxLength)
	clone.MinValue = cloneInt(f.MinValue)
	clone.MaxValue = cloneInt(f.MaxValue)
	clone.Choices = append([]Choice(nil), f.Choices...)
	clone.Validators = append([]validators.Validator(nil), f.Validators...)
	return &clone
}

// ToDomain converts a raw widget value into the field's domain value. Empty
// raw input maps to nil. Integer fields reject unparseable text with a
// conversion error; the other kinds are total over their raw value space.
func (f *Field) ToDomain(raw any) (any, error) {
	switch f.Kind {
	case KindInteger:
		return integerToDomain(raw)
	case KindBoolean:
		return truthy(raw), nil
	case KindChoice:
		s := rawString(raw)
		if s == "" {
			return nil, nil
		}
		return s, nil
	default:
		s := rawString(raw)
		if s == "" {
			return nil, nil
		}
		return strings.TrimSpace(s), nil
	}
}

// ToRaw converts a domain value into its widget representation. It never
// fails: nil maps to the kind's empty raw value.
func (f *Field) ToRaw(domain any) any {
	switch f.Kind {
	case KindBoolean:
		return truthy(domain)
	case KindInteger:
		if domain == nil {
			return ""
		}
		switch v := domain.(type) {
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		default:
			return fmt.Sprint(domain)
		}
	default:
		if domain == nil {
			return ""
		}
		return fmt.Sprint(domain)
	}
}

// Validate checks the converted domain value against the field's
// constraints. The required check runs first and short-circuits the
// remaining checks when the value is empty.
func (f *Field) Validate(domain any) error {
	if isEmptyValue(domain) {
		if f.Required {
			return &ValidationError{
				Message: fmt.Sprintf("%s is required", f.DisplayName()),
				Code:    CodeRequired,
			}
		}
		return nil
	}

	switch f.Kind {
	case KindInteger:
		return f.validateRange(domain)
	case KindChoice:
		return f.validateChoice(domain)
	case KindBoolean:
		return nil
	default:
		return f.validateLength(domain)
	}
}

func (f *Field) validateRange(domain any) error {
	n, ok := domain.(int)
	if !ok {
		return nil
	}
	if f.MinValue != nil && n < *f.MinValue {
		return &ValidationError{
			Message: fmt.Sprintf("Must be at least %d", *f.MinValue),
			Code:    CodeRange,
		}
	}
	if f.MaxValue != nil && n > *f.MaxValue {
		return &ValidationError{
			Message: fmt.Sprintf("Must be at most %d", *f.MaxValue),
			Code:    CodeRange,
		}
	}
	return nil
}

func (f *Field) validateLength(domain any) error {
	s, ok := domain.(string)
	if !ok {
		s = fmt.Sprint(domain)
	}
	length := utf8.RuneCountInString(s)
	if f.MinLength != nil && length < *f.MinLength {
		return &ValidationError{
			Message: fmt.Sprintf("Must be at least %d characters", *f.MinLength),
			Code:    CodeLength,
		}
	}
	if f.MaxLength != nil && length > *f.MaxLength {
		return &ValidationError{
			Message: fmt.Sprintf("Must be at most %d characters", *f.MaxLength),
			Code:    CodeLength,
		}
	}
	return nil
}

func (f *Field) validateChoice(domain any) error {
	value := rawString(domain)
	for _, choice := range f.Choices {
		if choice.Value == value {
			return nil
		}
	}
	return &ValidationError{
		Message: fmt.Sprintf("%q is not a valid choice", value),
		Code:    CodeChoice,
	}
}

// Value returns the field's current domain value through its bound widget,
// falling back to the declaration default while unbound. Raw input that
// fails conversion reads as nil; Form.Validate surfaces the message.
func (f *Field) Value() any {
	domain, err := f.ToDomain(f.rawValue())
	if err != nil {
		return nil
	}
	return domain
}

// SetValue pushes a domain value into the bound widget, or into the default
// while unbound so it survives until mounting.
func (f *Field) SetValue(value any) {
	if f.widget != nil {
		f.widget.SetValue(f.ToRaw(value))
		return
	}
	f.Default = value
}

func (f *Field) rawValue() any {
	if f.widget != nil {
		return f.widget.Value()
	}
	return f.ToRaw(f.Default)
}

// checkValidators runs the supplementary validators against a raw value and
// collects their messages. Used directly for unbound fields; bound fields
// run them through the widget's validate hook instead.
func (f *Field) checkValidators(raw any) []string {
	var messages []string
	for _, check := range f.Validators {
		if check == nil {
			continue
		}
		if err := check.Validate(raw); err != nil {
			messages = append(messages, err.Error())
		}
	}
	return messages
}

func integerToDomain(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		if v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, NewConversionError("Invalid integer: %s", v)
		}
		return n, nil
	default:
		n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(raw)))
		if err != nil {
			return nil, NewConversionError("Invalid integer: %v", raw)
		}
		return n, nil
	}
}

// truthy maps the raw value space onto booleans: native bools pass through,
// strings use the usual truthy set, integers compare against zero.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return true
		default:
			return false
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func rawString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isEmptyValue(domain any) bool {
	if domain == nil {
		return true
	}
	if s, ok := domain.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
