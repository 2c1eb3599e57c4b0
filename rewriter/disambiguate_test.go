package rewriter_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/oasnormalize/rewriter/rewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisambiguateMultiContentRequestSchemas(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("GetPet", document.Inline(&document.Schema{Type: "object"}))

	content := orderedmap.New[string, *document.MediaType]()
	content.Set("application/json", &document.MediaType{Schema: document.Reference(refs.NewComponent("schemas", "GetPet"))})
	content.Set("application/xml", &document.MediaType{Schema: document.Inline(&document.Schema{Type: "string"})})

	op := &document.Operation{
		OperationID: "GetPet",
		RequestBody: &document.RequestBodyOrRef{Body: &document.RequestBody{Content: content}},
	}
	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodPost, op)
	doc.Paths.Set("/pets", &document.PathItem{Operations: ops})

	rewriter.DisambiguateMultiContentRequestSchemas(doc)

	mt, _ := content.Get("application/json")
	require.True(t, mt.Schema.IsReference())
	name, ok := mt.Schema.Ref.ComponentName("schemas")
	require.True(t, ok)
	assert.NotEqual(t, "GetPet", name)
	assert.True(t, doc.Components.Schemas.Has(name))
}

func TestFixContentTypeWrapperCollisions(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("CreatePetapplication_json", document.Inline(&document.Schema{Type: "object"}))

	content := orderedmap.New[string, *document.MediaType]()
	content.Set("application/json", &document.MediaType{Schema: document.Inline(&document.Schema{Type: "object"})})

	op := &document.Operation{
		OperationID: "CreatePet",
		RequestBody: &document.RequestBodyOrRef{Body: &document.RequestBody{Content: content}},
	}
	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodPost, op)
	doc.Paths.Set("/pets", &document.PathItem{Operations: ops})

	rewriter.FixContentTypeWrapperCollisions(doc)

	assert.False(t, doc.Components.Schemas.Has("CreatePetapplication_json"))
	assert.True(t, doc.Components.Schemas.Has("CreatePetapplication_jsonBody"))
}
