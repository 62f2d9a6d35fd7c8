// Package schema loads declarative form definitions from YAML documents and
// builds the corresponding flattened templates. A document declares named
// forms in order; a form entry is either a field or a compose reference to a
// form declared earlier in the same document.
package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

// Document is the parsed shape of a definition file.
type Document struct {
	Forms []FormDoc `yaml:"forms"`
}

// FormDoc declares one named form.
type FormDoc struct {
	Name   string     `yaml:"name"`
	Title  string     `yaml:"title"`
	Fields []EntryDoc `yaml:"fields"`
}

// EntryDoc is a single declaration item: a field (Name+Kind) or a compose
// reference (Compose naming an earlier form).
type EntryDoc struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	Label      string      `yaml:"label"`
	Help       string      `yaml:"help"`
	Required   bool        `yaml:"required"`
	Default    any         `yaml:"default"`
	MinLength  *int        `yaml:"minLength"`
	MaxLength  *int        `yaml:"maxLength"`
	Min        *int        `yaml:"min"`
	Max        *int        `yaml:"max"`
	Choices    []ChoiceDoc `yaml:"choices"`
	Validators []string    `yaml:"validators"`

	Compose string `yaml:"compose"`
	Prefix  string `yaml:"prefix"`
	Title   string `yaml:"title"`
}

// ChoiceDoc pairs a stored value with a display label.
type ChoiceDoc struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Parse decodes a YAML definition document.
func Parse(data []byte) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("schema: document is empty")
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("schema: parse document: %w", err)
	}
	return doc, nil
}

// LoadFile reads and parses a definition document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("schema: file %s: %w", path, err)
	}
	return doc, nil
}

// Set holds the definitions built from one document, in declaration order.
type Set struct {
	order []string
	defs  map[string]*forms.Definition
}

// Names returns the definition names in document order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Definition returns a built definition by name.
func (s *Set) Definition(name string) (*forms.Definition, bool) {
	def, ok := s.defs[name]
	return def, ok
}

// Build resolves every form in the document. Compose entries may only
// reference forms declared earlier, mirroring definition-time resolution:
// a dangling reference fails the whole build.
func (d Document) Build() (*Set, error) {
	set := &Set{defs: make(map[string]*forms.Definition, len(d.Forms))}

	for _, formDoc := range d.Forms {
		name := strings.TrimSpace(formDoc.Name)
		if name == "" {
			return nil, fmt.Errorf("schema: form with empty name")
		}
		if _, exists := set.defs[name]; exists {
			return nil, fmt.Errorf("schema: duplicate form %q", name)
		}

		items := make([]forms.Item, 0, len(formDoc.Fields))
		for i, entry := range formDoc.Fields {
			item, err := buildItem(set, name, i, entry)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		def, err := forms.NewDefinition(name, items...)
		if err != nil {
			return nil, fmt.Errorf("schema: form %q: %w", name, err)
		}
		set.defs[name] = def
		set.order = append(set.order, name)
	}

	return set, nil
}

func buildItem(set *Set, formName string, pos int, entry EntryDoc) (forms.Item, error) {
	if ref := strings.TrimSpace(entry.Compose); ref != "" {
		source, ok := set.defs[ref]
		if !ok {
			return nil, fmt.Errorf("schema: form %q: compose entry %d references unknown form %q", formName, pos, ref)
		}
		var opts []forms.ComposeOption
		if entry.Title != "" {
			opts = append(opts, forms.WithSectionTitle(entry.Title))
		}
		return forms.Compose(source, entry.Prefix, opts...), nil
	}

	if strings.TrimSpace(entry.Name) == "" {
		return nil, fmt.Errorf("schema: form %q: entry %d has neither a field name nor a compose reference", formName, pos)
	}

	opts, err := fieldOptions(formName, entry)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(entry.Kind)) {
	case "", "string":
		return forms.String(entry.Name, entry.Label, opts...), nil
	case "text":
		return forms.Text(entry.Name, entry.Label, opts...), nil
	case "integer":
		return forms.Integer(entry.Name, entry.Label, opts...), nil
	case "boolean":
		return forms.Boolean(entry.Name, entry.Label, opts...), nil
	case "choice":
		choices := make([]forms.Choice, 0, len(entry.Choices))
		for _, choice := range entry.Choices {
			choices = append(choices, forms.Choice{Value: choice.Value, Label: choice.Label})
		}
		return forms.Select(entry.Name, entry.Label, choices, opts...), nil
	default:
		return nil, fmt.Errorf("schema: form %q: field %q has unknown kind %q", formName, entry.Name, entry.Kind)
	}
}

func fieldOptions(formName string, entry EntryDoc) ([]forms.FieldOption, error) {
	var opts []forms.FieldOption
	if entry.Required {
		opts = append(opts, forms.Required())
	}
	if entry.Help != "" {
		opts = append(opts, forms.WithHelp(entry.Help))
	}
	if entry.Default != nil {
		opts = append(opts, forms.WithDefault(entry.Default))
	}
	if entry.MinLength != nil {
		opts = append(opts, forms.WithMinLength(*entry.MinLength))
	}
	if entry.MaxLength != nil {
		opts = append(opts, forms.WithMaxLength(*entry.MaxLength))
	}
	if entry.Min != nil {
		opts = append(opts, forms.WithMin(*entry.Min))
	}
	if entry.Max != nil {
		opts = append(opts, forms.WithMax(*entry.Max))
	}
	for _, name := range entry.Validators {
		check, err := builtinValidator(name)
		if err != nil {
			return nil, fmt.Errorf("schema: form %q: field %q: %w", formName, entry.Name, err)
		}
		opts = append(opts, forms.WithValidators(check))
	}
	return opts, nil
}

// builtinValidator maps the names usable in documents onto the library
// validators. Parameterised checks (length, range) are expressed through the
// field constraints instead.
func builtinValidator(name string) (validators.Validator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "email":
		return validators.Email{}, nil
	case "palindrome":
		return validators.Palindrome{}, nil
	case "even":
		return validators.EvenInteger{}, nil
	default:
		return nil, fmt.Errorf("unknown validator %q", name)
	}
}
