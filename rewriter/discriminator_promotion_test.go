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

// TestPromoteEnumBranchesUnderDiscriminator reproduces spec.md §8 S5: a
// discriminated oneOf branch pointing at an enum-only component is wrapped
// in a new "<branch>_setting" object component carrying the enum value and
// the discriminator's property.
func TestPromoteEnumBranchesUnderDiscriminator(t *testing.T) {
	t.Parallel()

	doc := emptyDoc()
	doc.Components.Schemas.Set("Mode", document.Inline(&document.Schema{Type: "string", Enum: []any{"a", "b"}}))

	mapping := orderedmap.New[string, refs.Reference]()
	mapping.Set("Mode", refs.NewComponent("schemas", "Mode"))
	doc.Components.Schemas.Set("Root", document.Inline(&document.Schema{
		OneOf:         []*document.SchemaOrRef{document.Reference(refs.NewComponent("schemas", "Mode"))},
		Discriminator: &document.Discriminator{PropertyName: "kind", Mapping: mapping},
	}))

	rewriter.PromoteEnumBranchesUnderDiscriminator(doc, rewritelog.NopLogger{})

	root, _ := doc.Components.Schemas.Get("Root")
	require.Len(t, root.Schema.OneOf, 1)
	require.True(t, root.Schema.OneOf[0].IsReference())
	assert.Equal(t, refs.NewComponent("schemas", "Mode_setting"), *root.Schema.OneOf[0].Ref)

	wrapper, ok := doc.Components.Schemas.Get("Mode_setting")
	require.True(t, ok)
	assert.Equal(t, "object", wrapper.Schema.Type)
	assert.Contains(t, wrapper.Schema.Required, "value")

	value, ok := wrapper.Schema.Properties.Get("value")
	require.True(t, ok)
	assert.Equal(t, refs.NewComponent("schemas", "Mode"), *value.Ref)

	kind, ok := wrapper.Schema.Properties.Get("kind")
	require.True(t, ok)
	assert.Equal(t, "string", kind.Schema.Type)

	updatedMapping, ok := root.Schema.Discriminator.Mapping.Get("Mode")
	require.True(t, ok)
	assert.Equal(t, refs.NewComponent("schemas", "Mode_setting"), updatedMapping)
}
