package document

import (
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
)

// Schema is the Inline half of the Reference/Inline sum type spec.md §3
// describes. A node is a Reference exactly when SchemaOrRef.Ref != nil;
// this struct is never itself a reference.
type Schema struct {
	Type        string `yaml:"type,omitempty" json:"type,omitempty"` // one of string/integer/number/boolean/array/object/null, or "" if unset
	Format      string `yaml:"format,omitempty" json:"format,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"` // freely mutable — see SPEC_FULL.md Open Question 3
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Default any   `yaml:"default,omitempty" json:"default,omitempty"`
	Example any   `yaml:"example,omitempty" json:"example,omitempty"`
	Enum    []any `yaml:"enum,omitempty" json:"enum,omitempty"`

	Properties *orderedmap.Map[string, *SchemaOrRef] `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required   []string                              `yaml:"required,omitempty" json:"required,omitempty"`

	Items *SchemaOrRef `yaml:"items,omitempty" json:"items,omitempty"`

	// AdditionalProperties and AdditionalPropertiesAllowed are mutually
	// exclusive: a schema with "additionalProperties: false" sets
	// AdditionalPropertiesAllowed to a pointer to false and leaves
	// AdditionalProperties nil; a schema-valued additionalProperties sets
	// AdditionalProperties and leaves AdditionalPropertiesAllowed nil. Both
	// are tagged "-": codec.go decodes/encodes the single wire key by hand.
	AdditionalProperties        *SchemaOrRef `yaml:"-" json:"-"`
	AdditionalPropertiesAllowed *bool        `yaml:"-" json:"-"`

	AllOf []*SchemaOrRef `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	OneOf []*SchemaOrRef `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	AnyOf []*SchemaOrRef `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`

	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`

	MinLength *int     `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int     `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Minimum   *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum   *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// Discriminator pairs a propertyName with the mapping generators use to
// select a oneOf/anyOf branch.
type Discriminator struct {
	PropertyName string                            `yaml:"propertyName" json:"propertyName"`
	Mapping      *orderedmap.Map[string, refs.Reference] `yaml:"mapping,omitempty" json:"mapping,omitempty"`
}

// SchemaOrRef is the tagged Reference/Inline variant. Passes mutate a
// schema slot by replacing the *SchemaOrRef value behind the slot pointer,
// never by mutating an Inline schema that is shared by more than one slot.
type SchemaOrRef struct {
	Ref    *refs.Reference
	Schema *Schema
}

// IsReference reports whether this slot holds a $ref rather than an
// inline schema.
func (s *SchemaOrRef) IsReference() bool {
	return s != nil && s.Ref != nil
}

// Reference builds a SchemaOrRef that is a reference to the given
// component schema.
func Reference(ref refs.Reference) *SchemaOrRef {
	return &SchemaOrRef{Ref: &ref}
}

// Inline builds a SchemaOrRef that wraps an inline schema.
func Inline(s *Schema) *SchemaOrRef {
	return &SchemaOrRef{Schema: s}
}

// IsEmpty reports whether s is an Empty Schema per the GLOSSARY: no type,
// no composition, no properties, no enum, no items, no additional
// properties (and additionalProperties isn't explicitly disallowed).
func (s *Schema) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.Type != "" {
		return false
	}
	if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return false
	}
	if s.Properties.Len() > 0 {
		return false
	}
	if len(s.Enum) > 0 {
		return false
	}
	if s.Items != nil {
		return false
	}
	if s.AdditionalProperties != nil {
		return false
	}
	if s.AdditionalPropertiesAllowed != nil && !*s.AdditionalPropertiesAllowed {
		return false
	}
	return true
}

// IsPrimitive reports whether s is a Pure Primitive per the GLOSSARY: only
// a primitive type plus formatting facets, no enum/composition/items/
// properties.
func (s *Schema) IsPrimitive() bool {
	if s == nil {
		return false
	}
	switch s.Type {
	case "string", "integer", "number", "boolean":
	default:
		return false
	}
	if len(s.Enum) > 0 {
		return false
	}
	if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return false
	}
	if s.Items != nil {
		return false
	}
	if s.Properties.Len() > 0 {
		return false
	}
	return true
}
