package widgets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

// Input is the single-line text value holder backing string fields.
type Input struct {
	raw    string
	checks []validators.Validator
}

// NewInput builds an input seeded from the field's validators. The validators
// run on whatever raw value the widget holds, empty included; each validator
// decides for itself whether empty input passes. The required check belongs
// to the field.
func NewInput(field *forms.Field) *Input {
	return &Input{checks: field.Validators}
}

// Value implements forms.Widget.
func (w *Input) Value() any { return w.raw }

// SetValue implements forms.Widget.
func (w *Input) SetValue(value any) { w.raw = stringify(value) }

// Validate implements forms.Widget.
func (w *Input) Validate(value any) forms.Result {
	return runChecks(w.checks, stringify(value))
}

// TextArea is the multi-line text value holder backing text fields. It
// shares Input's validation behavior.
type TextArea struct {
	Input
}

// NewTextArea builds a textarea seeded from the field's validators.
func NewTextArea(field *forms.Field) *TextArea {
	return &TextArea{Input: *NewInput(field)}
}

// IntegerInput holds a numeric raw string. Its validate hook enforces the
// integer format so invalid text surfaces during widget validation as well
// as during field conversion.
type IntegerInput struct {
	raw    string
	checks []validators.Validator
}

// NewIntegerInput builds an integer input seeded from the field's validators.
func NewIntegerInput(field *forms.Field) *IntegerInput {
	return &IntegerInput{checks: field.Validators}
}

// Value implements forms.Widget.
func (w *IntegerInput) Value() any { return w.raw }

// SetValue implements forms.Widget.
func (w *IntegerInput) SetValue(value any) { w.raw = stringify(value) }

// Validate implements forms.Widget.
func (w *IntegerInput) Validate(value any) forms.Result {
	s := stringify(value)
	if s != "" {
		if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return forms.Fail(fmt.Sprintf("Invalid integer: %s", s))
		}
	}
	return runChecks(w.checks, s)
}

// Checkbox holds a boolean raw value.
type Checkbox struct {
	raw    bool
	checks []validators.Validator
}

// NewCheckbox builds a checkbox seeded from the field's validators.
func NewCheckbox(field *forms.Field) *Checkbox {
	return &Checkbox{checks: field.Validators}
}

// Value implements forms.Widget.
func (w *Checkbox) Value() any { return w.raw }

// SetValue implements forms.Widget.
func (w *Checkbox) SetValue(value any) {
	if b, ok := value.(bool); ok {
		w.raw = b
		return
	}
	switch strings.ToLower(strings.TrimSpace(stringify(value))) {
	case "true", "yes", "1", "on":
		w.raw = true
	default:
		w.raw = false
	}
}

// Validate implements forms.Widget.
func (w *Checkbox) Validate(value any) forms.Result {
	return runChecks(w.checks, value)
}

// SelectBox holds one value out of a fixed choice set.
type SelectBox struct {
	raw     string
	choices []forms.Choice
	checks  []validators.Validator
}

// NewSelectBox builds a select seeded from the field's choice set.
func NewSelectBox(field *forms.Field) *SelectBox {
	return &SelectBox{
		choices: append([]forms.Choice(nil), field.Choices...),
		checks:  field.Validators,
	}
}

// Value implements forms.Widget.
func (w *SelectBox) Value() any { return w.raw }

// SetValue implements forms.Widget.
func (w *SelectBox) SetValue(value any) { w.raw = stringify(value) }

// Validate implements forms.Widget.
func (w *SelectBox) Validate(value any) forms.Result {
	s := stringify(value)
	if s == "" {
		// emptiness is reported by the field's required check
		return runChecks(w.checks, s)
	}
	for _, choice := range w.choices {
		if choice.Value == s {
			return runChecks(w.checks, s)
		}
	}
	return forms.Fail(fmt.Sprintf("%q is not a valid choice", s))
}

// Choices returns the widget's choice set in declaration order.
func (w *SelectBox) Choices() []forms.Choice {
	return append([]forms.Choice(nil), w.choices...)
}

func runChecks(checks []validators.Validator, value any) forms.Result {
	var messages []string
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check.Validate(value); err != nil {
			messages = append(messages, err.Error())
		}
	}
	if len(messages) > 0 {
		return forms.Fail(messages...)
	}
	return forms.Pass()
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
