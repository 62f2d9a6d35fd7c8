package forms

import "github.com/goliatone/go-forms/pkg/validators"

// FieldOption customises a field declaration at construction time.
type FieldOption func(*Field)

// Required marks the field as mandatory: nil values and blank strings fail
// validation.
func Required() FieldOption {
	return func(f *Field) {
		f.Required = true
	}
}

// WithHelp attaches help text. The core treats it as opaque display data.
func WithHelp(text string) FieldOption {
	return func(f *Field) {
		f.HelpText = text
	}
}

// WithDefault supplies the initial domain value.
func WithDefault(value any) FieldOption {
	return func(f *Field) {
		f.Default = value
	}
}

// WithMinLength constrains the minimum character count for string kinds.
func WithMinLength(n int) FieldOption {
	return func(f *Field) {
		f.MinLength = &n
	}
}

// WithMaxLength constrains the maximum character count for string kinds.
func WithMaxLength(n int) FieldOption {
	return func(f *Field) {
		f.MaxLength = &n
	}
}

// WithMin constrains the minimum value for integer fields.
func WithMin(n int) FieldOption {
	return func(f *Field) {
		f.MinValue = &n
	}
}

// WithMax constrains the maximum value for integer fields.
func WithMax(n int) FieldOption {
	return func(f *Field) {
		f.MaxValue = &n
	}
}

// WithValidators appends supplementary validators, run after type conversion
// in the order given.
func WithValidators(checks ...validators.Validator) FieldOption {
	return func(f *Field) {
		f.Validators = append(f.Validators, checks...)
	}
}
