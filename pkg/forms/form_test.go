package forms_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

// stubWidget is a minimal value holder used to exercise the widget boundary
// without pulling in a real rendering surface.
type stubWidget struct {
	raw    any
	checks []validators.Validator
}

func (w *stubWidget) Value() any         { return w.raw }
func (w *stubWidget) SetValue(value any) { w.raw = value }

func (w *stubWidget) Validate(value any) forms.Result {
	var messages []string
	for _, check := range w.checks {
		if err := check.Validate(value); err != nil {
			messages = append(messages, err.Error())
		}
	}
	if len(messages) > 0 {
		return forms.Fail(messages...)
	}
	return forms.Pass()
}

type stubMounter struct{}

func (stubMounter) Create(field *forms.Field) (forms.Widget, error) {
	return &stubWidget{checks: field.Validators}, nil
}

func userDef(t *testing.T) *forms.Definition {
	t.Helper()
	def, err := forms.NewDefinition("user",
		forms.String("name", "Name", forms.Required()),
		forms.Integer("age", "Age", forms.WithMin(0)),
		forms.String("email", "Email"),
	)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	return def
}

func TestForm_InstanceIsolation(t *testing.T) {
	def := userDef(t)

	first := def.New()
	second := def.New()

	fieldA, err := first.Field("age")
	if err != nil || fieldA == nil {
		t.Fatalf("lookup age: %v", err)
	}
	fieldB, err := second.Field("age")
	if err != nil || fieldB == nil {
		t.Fatalf("lookup age: %v", err)
	}

	*fieldA.MinValue = 99
	fieldA.Label = "Mutated"

	if *fieldB.MinValue != 0 {
		t.Fatalf("sibling instance saw constraint mutation: %d", *fieldB.MinValue)
	}
	if fieldB.Label != "Age" {
		t.Fatalf("sibling instance saw label mutation: %q", fieldB.Label)
	}

	if first.ID() == second.ID() {
		t.Fatal("expected distinct instance ids")
	}
}

func TestForm_FieldOrderOverride(t *testing.T) {
	def := userDef(t)

	form := def.New(forms.WithFieldOrder("email", "name", "age"))

	want := []string{"email", "name", "age"}
	if diff := cmp.Diff(want, form.FieldNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_FieldOrderKeepsRemainder(t *testing.T) {
	def := userDef(t)

	form := def.New(forms.WithFieldOrder("age"))

	want := []string{"age", "name", "email"}
	if diff := cmp.Diff(want, form.FieldNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_OrderFieldsNilIsNoop(t *testing.T) {
	def := userDef(t)
	form := def.New()

	before := form.FieldNames()
	form.OrderFields(nil)
	if diff := cmp.Diff(before, form.FieldNames()); diff != "" {
		t.Fatalf("nil order changed layout (-want +got):\n%s", diff)
	}
}

func TestForm_SetDataIgnoresUnknownKeys(t *testing.T) {
	def := userDef(t)
	form := def.New()

	form.SetData(map[string]any{
		"name":    "Ada",
		"age":     36,
		"unknown": "dropped silently",
	})

	data := form.Data()
	if data["name"] != "Ada" {
		t.Fatalf("name = %v", data["name"])
	}
	if data["age"] != 36 {
		t.Fatalf("age = %v", data["age"])
	}
	if _, ok := data["unknown"]; ok {
		t.Fatal("unknown key leaked into data")
	}
}

func TestForm_InitialDataAtConstruction(t *testing.T) {
	def := userDef(t)
	form := def.New(forms.WithData(map[string]any{"email": "ada@example.com"}))

	if got := form.Data()["email"]; got != "ada@example.com" {
		t.Fatalf("email = %v", got)
	}
}

func TestForm_BindsBackReferences(t *testing.T) {
	def := userDef(t)
	form := def.New()

	for _, field := range form.Fields() {
		if field.Form() != form {
			t.Fatalf("field %q not bound to its form", field.Name())
		}
	}
}

func TestForm_MountAndLiveValues(t *testing.T) {
	def := userDef(t)
	form := def.New(forms.WithData(map[string]any{"age": 41}))

	if err := form.Mount(stubMounter{}); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !form.Mounted() {
		t.Fatal("expected mounted form")
	}

	age, err := form.Field("age")
	if err != nil || age == nil {
		t.Fatalf("lookup: %v", err)
	}
	if age.Widget() == nil {
		t.Fatal("expected bound widget")
	}
	if age.Value() != 41 {
		t.Fatalf("age = %v", age.Value())
	}

	age.SetValue(42)
	if age.Widget().Value() != "42" {
		t.Fatalf("widget raw = %v", age.Widget().Value())
	}
	if age.Value() != 42 {
		t.Fatalf("age after set = %v", age.Value())
	}
}

func TestForm_MountFailsWithoutMounter(t *testing.T) {
	def := userDef(t)
	form := def.New()

	if err := form.Mount(nil); err == nil {
		t.Fatal("expected mount error")
	}
}

func TestForm_ValidationCompleteness(t *testing.T) {
	def, err := forms.NewDefinition("signup",
		forms.String("name", "Name", forms.Required()),
		forms.String("nickname", "Nickname"),
		forms.Integer("age", "Age", forms.WithMin(18)),
	)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}

	form := def.New(forms.WithData(map[string]any{
		"nickname": "ok",
		"age":      12, // invalid: below minimum
		// name missing: required failure
	}))
	if err := form.Mount(stubMounter{}); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if form.Validate() {
		t.Fatal("expected overall failure")
	}

	name, _ := form.Field("name")
	if len(name.Errors()) == 0 {
		t.Fatal("expected errors on required name")
	}
	age, _ := form.Field("age")
	if len(age.Errors()) == 0 {
		t.Fatal("expected errors on out-of-range age despite earlier failure")
	}
	nickname, _ := form.Field("nickname")
	if len(nickname.Errors()) != 0 {
		t.Fatalf("valid field reported errors: %v", nickname.Errors())
	}

	wantErrs := map[string][]string{
		"name": {"Name is required"},
		"age":  {"Must be at least 18"},
	}
	if diff := cmp.Diff(wantErrs, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ValidateClearsPreviousErrors(t *testing.T) {
	def := userDef(t)
	form := def.New()
	if err := form.Mount(stubMounter{}); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if form.Validate() {
		t.Fatal("expected failure while name is empty")
	}

	form.SetData(map[string]any{"name": "Grace"})
	if !form.Validate() {
		t.Fatalf("expected pass after fixing, errors: %v", form.Errors())
	}

	name, _ := form.Field("name")
	if len(name.Errors()) != 0 {
		t.Fatalf("stale errors survived revalidation: %v", name.Errors())
	}
}

func TestForm_ValidateAggregatesWidgetAndFieldChecks(t *testing.T) {
	def, err := forms.NewDefinition("survey",
		forms.String("code", "Code",
			forms.WithMaxLength(3),
			forms.WithValidators(validators.Palindrome{}),
		),
	)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}

	form := def.New(forms.WithData(map[string]any{"code": "abcd"}))
	if err := form.Mount(stubMounter{}); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if form.Validate() {
		t.Fatal("expected failure")
	}

	code, _ := form.Field("code")
	want := []string{"Must be a palindrome", "Must be at most 3 characters"}
	if diff := cmp.Diff(want, code.Errors()); diff != "" {
		t.Fatalf("aggregated messages mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_DataCoversEveryField(t *testing.T) {
	address := addressDef(t)
	def, err := forms.NewDefinition("order",
		forms.String("ref", "Reference"),
		forms.Compose(address, "billing"),
	)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}

	form := def.New()
	data := form.Data()

	for _, name := range form.FieldNames() {
		if _, ok := data[name]; !ok {
			t.Fatalf("data missing field %q: %v", name, data)
		}
	}
	if len(data) != len(form.FieldNames()) {
		t.Fatalf("data has extra keys: %v", data)
	}
}

func ExampleForm_Field() {
	address := forms.MustDefine("address",
		forms.String("street", "Street"),
	)
	order := forms.MustDefine("order",
		forms.Compose(address, "billing"),
		forms.Compose(address, "shipping"),
	)

	form := order.New()
	_, err := form.Field("street")
	fmt.Println(err)
	// Output: forms: field "street" is ambiguous, could be: billing_street, shipping_street; use the full qualified name to disambiguate
}
