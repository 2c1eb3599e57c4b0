package rewriter_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/oasnormalize/rewriter/rewriter"
	"github.com/oasnormalize/rewriter/rewritelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyDoc() *document.Document {
	return &document.Document{
		Paths:      orderedmap.New[string, *document.PathItem](),
		Components: &document.Components{Schemas: orderedmap.New[string, *document.SchemaOrRef]()},
	}
}

func TestInlinePrimitiveComponents(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("Name", document.Inline(&document.Schema{Type: "string", MaxLength: intPtr(64)}))

	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("name", document.Reference(refs.NewComponent("schemas", "Name")))
	doc.Components.Schemas.Set("Pet", document.Inline(&document.Schema{Type: "object", Properties: props}))

	rewriter.InlinePrimitiveComponents(doc)

	assert.False(t, doc.Components.Schemas.Has("Name"))
	pet, _ := doc.Components.Schemas.Get("Pet")
	name, ok := pet.Schema.Properties.Get("name")
	require.True(t, ok)
	assert.False(t, name.IsReference())
	assert.Equal(t, "string", name.Schema.Type)
	assert.Equal(t, 64, *name.Schema.MaxLength)
}

func intPtr(i int) *int { return &i }

func TestExtractInlineArrayItemSchemas(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	itemProps := orderedmap.New[string, *document.SchemaOrRef]()
	itemProps.Set("id", document.Inline(&document.Schema{Type: "string"}))
	doc.Components.Schemas.Set("PetList", document.Inline(&document.Schema{
		Type:  "array",
		Items: document.Inline(&document.Schema{Type: "object", Properties: itemProps}),
	}))

	rewriter.ExtractInlineArrayItemSchemas(doc)

	list, _ := doc.Components.Schemas.Get("PetList")
	assert.True(t, list.Schema.Items.IsReference())
	assert.Equal(t, refs.NewComponent("schemas", "PetList_item"), *list.Schema.Items.Ref)
	assert.True(t, doc.Components.Schemas.Has("PetList_item"))
}

func TestEnsureDiscriminatorForPolymorphicSchemas(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("Cat", document.Inline(&document.Schema{Type: "object"}))
	doc.Components.Schemas.Set("Dog", document.Inline(&document.Schema{Type: "object"}))
	doc.Components.Schemas.Set("Pet", document.Inline(&document.Schema{
		OneOf: []*document.SchemaOrRef{
			document.Reference(refs.NewComponent("schemas", "Cat")),
			document.Reference(refs.NewComponent("schemas", "Dog")),
		},
	}))

	rewriter.EnsureDiscriminatorForPolymorphicSchemas(doc)

	pet, _ := doc.Components.Schemas.Get("Pet")
	require.NotNil(t, pet.Schema.Discriminator)
	assert.Equal(t, "type", pet.Schema.Discriminator.PropertyName)
	assert.True(t, pet.Schema.Properties.Has("type"))
	assert.Contains(t, pet.Schema.Required, "type")

	cat, ok := pet.Schema.Discriminator.Mapping.Get("Cat")
	require.True(t, ok)
	assert.Equal(t, refs.NewComponent("schemas", "Cat"), cat)
}

func TestRemoveRedundantDerivedValueOverride(t *testing.T) {
	t.Parallel()

	base := orderedmap.New[string, *document.SchemaOrRef]()
	base.Set("value", document.Inline(&document.Schema{Type: "string"}))

	derived := orderedmap.New[string, *document.SchemaOrRef]()
	derived.Set("value", document.Inline(&document.Schema{Type: "string"}))

	s := &document.Schema{
		AllOf: []*document.SchemaOrRef{
			document.Inline(&document.Schema{Properties: base, Required: []string{"value"}}),
			document.Inline(&document.Schema{Properties: derived, Required: []string{"value"}}),
		},
	}
	doc := emptyDoc()
	doc.Components.Schemas.Set("Root", document.Inline(s))

	rewriter.RemoveRedundantDerivedValueOverride(doc)

	assert.True(t, s.AllOf[0].Schema.Properties.Has("value"))
	assert.False(t, s.AllOf[1].Schema.Properties.Has("value"))
	assert.NotContains(t, s.AllOf[1].Schema.Required, "value")
}

func TestRenameConflictingPaths_SynthesizesMissingPathParameter(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Paths.Set("/pets/{id}", &document.PathItem{})

	rewriter.RenameConflictingPaths(doc, rewritelog.NopLogger{})

	item, _ := doc.Paths.Get("/pets/{id}")
	require.Len(t, item.Parameters, 1)
	assert.Equal(t, "id", item.Parameters[0].Parameter.Name)
	assert.Equal(t, document.ParameterInPath, item.Parameters[0].Parameter.In)
	assert.True(t, item.Parameters[0].Parameter.Required)
}

func TestRenameConflictingPaths_DedupesRepeatedParamName(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Paths.Set("/a/{id}/b/{id}", &document.PathItem{})

	rewriter.RenameConflictingPaths(doc, rewritelog.NopLogger{})

	assert.False(t, doc.Paths.Has("/a/{id}/b/{id}"))
	assert.True(t, doc.Paths.Has("/a/{id}/b/{id2}"))
}
