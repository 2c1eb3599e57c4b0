package rewriter_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/rewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixInlineValueEnums(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	props := orderedmap.New[string, *document.SchemaOrRef]()
	props.Set("value", document.Inline(&document.Schema{Type: "string", Enum: []any{"a", "b"}}))
	doc.Components.Schemas.Set("Mode", document.Inline(&document.Schema{Type: "object", Properties: props}))

	rewriter.FixInlineValueEnums(doc)

	mode, _ := doc.Components.Schemas.Get("Mode")
	value, ok := mode.Schema.Properties.Get("value")
	require.True(t, ok)
	assert.True(t, value.IsReference())

	extracted, ok := doc.Components.Schemas.Get("Mode_value")
	require.True(t, ok)
	assert.Equal(t, "string", extracted.Schema.Type)
	assert.Equal(t, []any{"a", "b"}, extracted.Schema.Enum)
}
