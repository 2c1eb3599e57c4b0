package naming_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyDoc() *document.Document {
	return &document.Document{
		Paths:      orderedmap.New[string, *document.PathItem](),
		Components: &document.Components{Schemas: orderedmap.New[string, *document.SchemaOrRef]()},
	}
}

// TestResolveSchemaOperationNameCollisions reproduces spec.md §8 S2: a
// schema named "Pet" colliding with an operationId "Pet" must be renamed
// to "PetBody", not some other suffix, and every reference to it updated.
func TestResolveSchemaOperationNameCollisions(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("Pet", document.Inline(&document.Schema{Type: "object"}))

	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("pet", document.Reference(refs.NewComponent("schemas", "Pet")))
	doc.Components.Schemas.Set("Owner", document.Inline(&document.Schema{Type: "object", Properties: props}))

	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodGet, &document.Operation{OperationID: "Pet"})
	doc.Paths.Set("/pets", &document.PathItem{Operations: ops})

	naming.ResolveSchemaOperationNameCollisions(doc)

	assert.False(t, doc.Components.Schemas.Has("Pet"))
	require.True(t, doc.Components.Schemas.Has("PetBody"))

	owner, _ := doc.Components.Schemas.Get("Owner")
	pet, ok := owner.Schema.Properties.Get("pet")
	require.True(t, ok)
	assert.Equal(t, refs.NewComponent("schemas", "PetBody"), *pet.Ref)
}
