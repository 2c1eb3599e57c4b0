package document_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDoc() *document.Document {
	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("owner", document.Inline(&document.Schema{Type: "string"}))

	petSchema := document.Inline(&document.Schema{
		Type:       "object",
		Properties: props,
	})

	schemas := orderedmap.New[string, *document.SchemaOrRef]()
	schemas.Set("Pet", petSchema)

	content := orderedmap.New[string, *document.MediaType]()
	content.Set("application/json", &document.MediaType{
		Schema: document.Reference(refs.NewComponent("schemas", "Pet")),
	})

	responses := orderedmap.New[string, *document.ResponseOrRef]()
	responses.Set("200", &document.ResponseOrRef{Response: &document.Response{Content: content}})

	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodGet, &document.Operation{OperationID: "getPet", Responses: responses})

	paths := orderedmap.New[string, *document.PathItem]()
	paths.Set("/pets/{id}", &document.PathItem{Operations: ops})

	return &document.Document{
		OpenAPI: "3.0.3",
		Paths:   paths,
		Components: &document.Components{
			Schemas: schemas,
		},
	}
}

func TestWalkSchemaSlots_VisitsComponentAndNestedSlots(t *testing.T) {
	t.Parallel()

	doc := buildTestDoc()

	var locations []string
	for slot := range document.WalkSchemaSlots(doc) {
		locations = append(locations, slot.Location)
	}

	assert.Contains(t, locations, "components.schemas.Pet")
	assert.Contains(t, locations, "components.schemas.Pet.properties.owner")
	assert.Contains(t, locations, "paths./pets/{id}.get.responses.200.content.application/json.schema")
}

func TestWalkSchemaSlots_SetRewritesInPlace(t *testing.T) {
	t.Parallel()

	doc := buildTestDoc()
	newRef := document.Reference(refs.NewComponent("schemas", "Owner"))

	for slot := range document.WalkSchemaSlots(doc) {
		if slot.Location == "components.schemas.Pet.properties.owner" {
			slot.Set(newRef)
		}
	}

	owner, ok := doc.Components.Schemas.GetOrZero("Pet").Schema.Properties.Get("owner")
	require.True(t, ok)
	assert.True(t, owner.IsReference())
	assert.Equal(t, refs.NewComponent("schemas", "Owner"), *owner.Ref)
}

func TestWalkSchemaSlots_StopsOnFalseReturn(t *testing.T) {
	t.Parallel()

	doc := buildTestDoc()

	count := 0
	for range document.WalkSchemaSlots(doc) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}
