package forms_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

func TestRoundTripConversion(t *testing.T) {
	choices := []forms.Choice{{Value: "red", Label: "Red"}, {Value: "blue", Label: "Blue"}}

	cases := []struct {
		name  string
		field *forms.Field
		value any
	}{
		{name: "string", field: forms.String("s", "S"), value: "hello"},
		{name: "text", field: forms.Text("t", "T"), value: "line one\nline two"},
		{name: "integer", field: forms.Integer("i", "I"), value: 42},
		{name: "integer negative", field: forms.Integer("i", "I"), value: -7},
		{name: "boolean true", field: forms.Boolean("b", "B"), value: true},
		{name: "boolean false", field: forms.Boolean("b", "B"), value: false},
		{name: "choice", field: forms.Select("c", "C", choices), value: "red"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := tc.field.ToRaw(tc.value)
			domain, err := tc.field.ToDomain(raw)
			if err != nil {
				t.Fatalf("ToDomain(%v): %v", raw, err)
			}
			if domain != tc.value {
				t.Fatalf("round trip: want %v (%T), got %v (%T)", tc.value, tc.value, domain, domain)
			}
		})
	}
}

func TestToDomain_EmptyMapsToNil(t *testing.T) {
	cases := []struct {
		name  string
		field *forms.Field
	}{
		{name: "string", field: forms.String("s", "S")},
		{name: "integer", field: forms.Integer("i", "I")},
		{name: "choice", field: forms.Select("c", "C", nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, raw := range []any{nil, ""} {
				domain, err := tc.field.ToDomain(raw)
				if err != nil {
					t.Fatalf("ToDomain(%v): %v", raw, err)
				}
				if domain != nil {
					t.Fatalf("ToDomain(%v) = %v, want nil", raw, domain)
				}
			}
		})
	}
}

func TestToDomain_IntegerConversionError(t *testing.T) {
	field := forms.Integer("age", "Age")

	_, err := field.ToDomain("abc")
	var valErr *forms.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Code != forms.CodeInvalid {
		t.Fatalf("expected code %q, got %q", forms.CodeInvalid, valErr.Code)
	}
	if valErr.Message != "Invalid integer: abc" {
		t.Fatalf("unexpected message %q", valErr.Message)
	}
}

func TestToDomain_StringTrims(t *testing.T) {
	field := forms.String("name", "Name")

	domain, err := field.ToDomain("  padded  ")
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	if domain != "padded" {
		t.Fatalf("expected trimmed value, got %q", domain)
	}
}

func TestToDomain_BooleanTruthyStrings(t *testing.T) {
	field := forms.Boolean("flag", "Flag")

	cases := map[string]bool{
		"true": true, "Yes": true, "1": true, "ON": true,
		"false": false, "no": false, "0": false, "": false, "anything": false,
	}
	for raw, want := range cases {
		domain, err := field.ToDomain(raw)
		if err != nil {
			t.Fatalf("ToDomain(%q): %v", raw, err)
		}
		if domain != want {
			t.Fatalf("ToDomain(%q) = %v, want %v", raw, domain, want)
		}
	}
}

func TestValidate_RequiredRunsFirst(t *testing.T) {
	field := forms.Integer("age", "Age", forms.Required(), forms.WithMin(18))

	err := field.Validate(nil)
	var valErr *forms.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Code != forms.CodeRequired {
		t.Fatalf("expected required failure before range checks, got code %q", valErr.Code)
	}
	if valErr.Message != "Age is required" {
		t.Fatalf("unexpected message %q", valErr.Message)
	}
}

func TestValidate_RequiredBlankString(t *testing.T) {
	field := forms.String("name", "Name", forms.Required())

	if err := field.Validate("   "); err == nil {
		t.Fatal("expected blank string to fail required check")
	}
	if err := field.Validate(nil); err == nil {
		t.Fatal("expected nil to fail required check")
	}
}

func TestValidate_OptionalEmptySkipsConstraints(t *testing.T) {
	field := forms.String("bio", "Bio", forms.WithMinLength(10))

	if err := field.Validate(nil); err != nil {
		t.Fatalf("optional empty field should pass, got %v", err)
	}
}

func TestValidate_Constraints(t *testing.T) {
	choices := []forms.Choice{{Value: "red"}, {Value: "blue"}}

	cases := []struct {
		name    string
		field   *forms.Field
		value   any
		wantErr string
	}{
		{
			name:    "below min value",
			field:   forms.Integer("age", "Age", forms.WithMin(18)),
			value:   17,
			wantErr: "Must be at least 18",
		},
		{
			name:    "above max value",
			field:   forms.Integer("age", "Age", forms.WithMax(120)),
			value:   121,
			wantErr: "Must be at most 120",
		},
		{
			name:    "too short",
			field:   forms.String("name", "Name", forms.WithMinLength(3)),
			value:   "ab",
			wantErr: "Must be at least 3 characters",
		},
		{
			name:    "too long",
			field:   forms.String("name", "Name", forms.WithMaxLength(4)),
			value:   "abcde",
			wantErr: "Must be at most 4 characters",
		},
		{
			name:    "not a choice",
			field:   forms.Select("color", "Color", choices),
			value:   "green",
			wantErr: `"green" is not a valid choice`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.field.Validate(tc.value)
			if err == nil {
				t.Fatalf("expected error %q, got nil", tc.wantErr)
			}
			if err.Error() != tc.wantErr {
				t.Fatalf("want %q, got %q", tc.wantErr, err.Error())
			}
		})
	}

	// Boundary values pass.
	if err := forms.Integer("age", "Age", forms.WithMin(18), forms.WithMax(120)).Validate(18); err != nil {
		t.Fatalf("boundary min should pass, got %v", err)
	}
	if err := forms.Select("color", "Color", choices).Validate("blue"); err != nil {
		t.Fatalf("member choice should pass, got %v", err)
	}
}

func TestClone_IsolatesConstraints(t *testing.T) {
	original := forms.String("name", "Name",
		forms.WithMinLength(2),
		forms.WithValidators(validators.Palindrome{}),
	)

	clone := original.Clone()
	*clone.MinLength = 99
	clone.Label = "Changed"

	if *original.MinLength != 2 {
		t.Fatalf("clone shares MinLength pointer: %d", *original.MinLength)
	}
	if original.Label != "Name" {
		t.Fatalf("clone shares label: %q", original.Label)
	}
}
