package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/render"
)

// maxValidatePasses bounds the re-prompt loop for fields whose prompts
// cannot enforce validity inline. Inline validators keep text prompts valid,
// so more than a couple of passes means something is misconfigured.
const maxValidatePasses = 3

// blankChoice is the option offered by optional select prompts.
const blankChoice = "(none)"

// Renderer drives a form through terminal prompts, one field at a time in
// flattened order, with inline re-validation on text input and a final
// submit confirmation.
type Renderer struct {
	driver  PromptDriver
	theme   Theme
	confirm bool
}

// New constructs a TUI renderer with defaults (survey driver, submit
// confirmation enabled).
func New(opts ...Option) (render.Renderer, error) {
	r := &Renderer{
		driver:  newSurveyDriver(),
		confirm: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Render prompts for every field, validates the whole form, and confirms
// submission. A user abort anywhere yields a cancelled outcome rather than
// an error.
func (r *Renderer) Render(ctx context.Context, form *forms.Form, opts render.Options) (render.Outcome, error) {
	if ctx == nil {
		return render.Outcome{}, errors.New("tui: context is required")
	}
	if form == nil {
		return render.Outcome{}, errors.New("tui: form is required")
	}
	if err := ctx.Err(); err != nil {
		return render.Outcome{}, err
	}

	if opts.FieldOrder != nil {
		form.OrderFields(opts.FieldOrder)
	}
	if len(opts.Values) > 0 {
		form.SetData(opts.Values)
	}

	if title := form.Title(); title != "" {
		if err := r.driver.Info(ctx, r.theme.TitlePrefix+"---- "+title+" ----"); err != nil {
			return render.Outcome{}, err
		}
	}

	announced := make(map[string]struct{})
	for _, field := range form.Fields() {
		if err := r.announceSection(ctx, form, field, announced); err != nil {
			return render.Outcome{}, err
		}
		if err := r.promptField(ctx, field); err != nil {
			if errors.Is(err, ErrAborted) {
				return render.Outcome{Status: render.StatusCancelled, Form: form}, nil
			}
			return render.Outcome{}, err
		}
	}

	for pass := 0; !form.Validate(); pass++ {
		if pass >= maxValidatePasses {
			return render.Outcome{}, errors.New("tui: form still invalid after re-prompting")
		}
		for _, field := range form.Fields() {
			if len(field.Errors()) == 0 {
				continue
			}
			for _, msg := range field.Errors() {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+field.DisplayName()+": "+msg); err != nil {
					return render.Outcome{}, err
				}
			}
			if err := r.promptField(ctx, field); err != nil {
				if errors.Is(err, ErrAborted) {
					return render.Outcome{Status: render.StatusCancelled, Form: form}, nil
				}
				return render.Outcome{}, err
			}
		}
	}

	if r.confirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return render.Outcome{Status: render.StatusCancelled, Form: form}, nil
			}
			return render.Outcome{}, err
		}
		if !ok {
			return render.Outcome{Status: render.StatusCancelled, Form: form}, nil
		}
	}

	return render.Outcome{
		Status: render.StatusSubmitted,
		Form:   form,
		Data:   form.Data(),
	}, nil
}

// announceSection prints a composed sub-form's title once per marker, in the
// position of its first field.
func (r *Renderer) announceSection(ctx context.Context, form *forms.Form, field *forms.Field, announced map[string]struct{}) error {
	meta, ok := form.Meta(field.Name())
	if !ok || meta.Title == "" {
		return nil
	}
	if _, done := announced[meta.ComposedFrom]; done {
		return nil
	}
	announced[meta.ComposedFrom] = struct{}{}
	return r.driver.Info(ctx, r.theme.SectionPrefix+meta.Title)
}

func (r *Renderer) promptField(ctx context.Context, field *forms.Field) error {
	switch field.Kind {
	case forms.KindBoolean:
		value, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.DisplayName(),
			Default: field.Value() == true,
			Help:    field.HelpText,
		})
		if err != nil {
			return err
		}
		field.SetValue(value)
		return nil

	case forms.KindChoice:
		return r.promptChoice(ctx, field)

	case forms.KindText:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.DisplayName(),
			Default: currentRaw(field),
			Help:    field.HelpText,
		})
		if err != nil {
			return err
		}
		field.SetValue(value)
		return nil

	default:
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   field.DisplayName(),
			Default:   currentRaw(field),
			Help:      field.HelpText,
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		field.SetValue(value)
		return nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, field *forms.Field) error {
	options := make([]string, 0, len(field.Choices)+1)
	values := make([]string, 0, len(field.Choices)+1)
	if !field.Required {
		options = append(options, blankChoice)
		values = append(values, "")
	}
	for _, choice := range field.Choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		options = append(options, label)
		values = append(values, choice.Value)
	}

	current := currentRaw(field)
	defaultIndex := 0
	for i, value := range values {
		if value == current {
			defaultIndex = i
			break
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.DisplayName(),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.HelpText,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: select returned out-of-range index %d for field %q", idx, field.Name())
	}
	field.SetValue(values[idx])
	return nil
}

// fieldValidator adapts a field's conversion, constraint, and supplementary
// checks into an inline prompt validator so invalid text re-prompts
// immediately.
func fieldValidator(field *forms.Field) func(string) error {
	return func(raw string) error {
		domain, err := field.ToDomain(raw)
		if err != nil {
			return err
		}
		if err := field.Validate(domain); err != nil {
			return err
		}
		for _, check := range field.Validators {
			if check == nil {
				continue
			}
			if err := check.Validate(raw); err != nil {
				return err
			}
		}
		return nil
	}
}

func currentRaw(field *forms.Field) string {
	raw := field.ToRaw(field.Value())
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}
