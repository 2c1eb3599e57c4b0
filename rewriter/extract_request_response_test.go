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

func TestExtractInlineRequestResponseSchemas(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()

	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("name", document.Inline(&document.Schema{Type: "string"}))
	content := orderedmap.New[string, *document.MediaType]()
	content.Set("application/json", &document.MediaType{Schema: document.Inline(&document.Schema{Type: "object", Properties: props})})

	op := &document.Operation{
		OperationID: "CreatePet",
		RequestBody: &document.RequestBodyOrRef{Body: &document.RequestBody{Content: content}},
	}
	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodPost, op)
	doc.Paths.Set("/pets", &document.PathItem{Operations: ops})

	rewriter.ExtractInlineRequestResponseSchemas(doc)

	mt, _ := content.Get("application/json")
	require.True(t, mt.Schema.IsReference())
	name, ok := mt.Schema.Ref.ComponentName("schemas")
	require.True(t, ok)
	extracted, ok := doc.Components.Schemas.Get(name)
	require.True(t, ok)
	assert.Equal(t, "object", extracted.Schema.Type)
	assert.True(t, extracted.Schema.Properties.Has("name"))
}

func TestExtractInlineRequestResponseSchemas_LeavesSimpleEnvelopeAlone(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("Pet", document.Inline(&document.Schema{Type: "object"}))

	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("data", document.Reference(refs.NewComponent("schemas", "Pet")))
	content := orderedmap.New[string, *document.MediaType]()
	content.Set("application/json", &document.MediaType{
		Schema: document.Inline(&document.Schema{Type: "object", Properties: props, Required: []string{"data"}}),
	})

	op := &document.Operation{
		OperationID: "GetPet",
		RequestBody: &document.RequestBodyOrRef{Body: &document.RequestBody{Content: content}},
	}
	ops := orderedmap.New[document.Method, *document.Operation]()
	ops.Set(document.MethodPost, op)
	doc.Paths.Set("/pets", &document.PathItem{Operations: ops})

	rewriter.ExtractInlineRequestResponseSchemas(doc)

	mt, _ := content.Get("application/json")
	assert.False(t, mt.Schema.IsReference())
}
