package forms

import (
	"fmt"
	"unicode"
)

// Item is a declaration-order entry in a form definition: a bare *Field or a
// *Composition marker.
type Item interface {
	formItem()
}

// Composition records the intent to splice another definition's flattened
// fields into the declaring form. It exists only during resolution and does
// not persist past flattening.
type Composition struct {
	source *Definition
	prefix string
	title  string
}

func (c *Composition) formItem() {}

// ComposeOption customises a composition marker.
type ComposeOption func(*Composition)

// WithSectionTitle overrides the presentation title recorded for the
// composed fields. Without it a non-empty prefix is capitalized and used.
func WithSectionTitle(title string) ComposeOption {
	return func(c *Composition) {
		c.title = title
	}
}

// Compose returns a marker that splices src's already-flattened fields into
// the declaring definition. A non-empty prefix is underscore-joined onto
// every spliced field name, so nesting concatenates prefixes level by level.
func Compose(src *Definition, prefix string, opts ...ComposeOption) *Composition {
	marker := &Composition{source: src, prefix: prefix}
	for _, opt := range opts {
		if opt != nil {
			opt(marker)
		}
	}
	if marker.title == "" && prefix != "" {
		marker.title = capitalize(prefix)
	}
	return marker
}

// Meta records which composition a flattened field came from. It is only
// populated for fields spliced by a marker carrying a non-empty prefix or an
// explicit title, and is used purely for presentation grouping.
type Meta struct {
	// ComposedFrom identifies the owning marker within the definition, so
	// renderers can emit one section header per composition.
	ComposedFrom string
	Prefix       string
	OriginalName string
	Title        string
}

// Definition is a form's immutable flattened field template: an ordered
// name-to-field collection produced by resolving declaration items. It is
// read-only after resolution, so concurrent instantiation needs no
// synchronization.
type Definition struct {
	name     string
	fields   []*Field
	index    map[string]int
	declared []string
	meta     map[string]Meta
}

// NewDefinition resolves declaration items in order into a flattened
// template. Composed markers expand their source's flattened set in place,
// depth-first within document order. Name collisions anywhere in the final
// set fail with a CompositionError; resolution failures are definition-time
// and must never be deferred to instantiation.
func NewDefinition(name string, items ...Item) (*Definition, error) {
	def := &Definition{
		name:  name,
		index: make(map[string]int),
		meta:  make(map[string]Meta),
	}

	var emitted []*Field
	for pos, item := range items {
		switch entry := item.(type) {
		case *Field:
			if entry == nil || entry.name == "" {
				return nil, &CompositionError{
					Message: fmt.Sprintf("definition %q: item %d is not a named field", name, pos),
				}
			}
			field := entry.Clone()
			emitted = append(emitted, field)
			def.declared = append(def.declared, field.name)

		case *Composition:
			if entry == nil || entry.source == nil {
				return nil, &CompositionError{
					Message: fmt.Sprintf("definition %q: cannot compose item %d: source is not a resolved definition", name, pos),
				}
			}
			markerID := fmt.Sprintf("%s[%d]", entry.source.name, pos)
			for _, nested := range entry.source.fields {
				newName := nested.name
				if entry.prefix != "" {
					newName = entry.prefix + "_" + nested.name
				}
				field := nested.Clone()
				field.name = newName
				emitted = append(emitted, field)

				if entry.prefix != "" || entry.title != "" {
					def.meta[newName] = Meta{
						ComposedFrom: markerID,
						Prefix:       entry.prefix,
						OriginalName: nested.name,
						Title:        entry.title,
					}
				}
			}

		default:
			return nil, &CompositionError{
				Message: fmt.Sprintf("definition %q: item %d has unsupported type %T", name, pos, item),
			}
		}
	}

	// Collision scan covers the entire emission: bare fields, composed
	// fields, and accidental overlaps between the two.
	for _, field := range emitted {
		if _, dup := def.index[field.name]; dup {
			return nil, &CompositionError{
				Name: field.name,
				Message: fmt.Sprintf("definition %q: field name collision: %q is defined multiple times, use different prefixes to avoid collisions",
					name, field.name),
			}
		}
		def.index[field.name] = len(def.fields)
		def.fields = append(def.fields, field)
	}

	return def, nil
}

// MustDefine is NewDefinition that panics on failure. Useful for
// package-level wiring where a misconfigured definition must stop the
// program at load time.
func MustDefine(name string, items ...Item) *Definition {
	def, err := NewDefinition(name, items...)
	if err != nil {
		panic(err)
	}
	return def
}

// Name returns the definition's identifier.
func (d *Definition) Name() string {
	return d.name
}

// Len returns the number of flattened fields.
func (d *Definition) Len() int {
	return len(d.fields)
}

// FieldNames returns the flattened field names in declaration order.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, field := range d.fields {
		names[i] = field.name
	}
	return names
}

// Declared returns the names of the bare top-level declarations, distinct
// from the full flattened set.
func (d *Definition) Declared() []string {
	return append([]string(nil), d.declared...)
}

// Meta returns the composition metadata recorded for a flattened field name.
func (d *Definition) Meta(name string) (Meta, bool) {
	meta, ok := d.meta[name]
	return meta, ok
}

// Field resolves a template field by exact or unqualified name using the
// same two-tier lookup as Form.Field. The returned field belongs to the
// template and must be treated as read-only.
func (d *Definition) Field(name string) (*Field, error) {
	idx, err := resolveName(d.FieldNames(), d.index, name)
	if err != nil || idx < 0 {
		return nil, err
	}
	return d.fields[idx], nil
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
