package forms

// Submitted is the lifecycle event emitted when a rendered form passes
// validation and the user confirms submission. Data carries the validated
// domain values at the moment of submission.
type Submitted struct {
	Form *Form
	Data map[string]any
}

// Cancelled is the lifecycle event emitted when the user abandons a rendered
// form. The form's data carries no validity guarantee.
type Cancelled struct {
	Form *Form
}
