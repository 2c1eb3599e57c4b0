package normalizer_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/normalizer"
	"github.com/stretchr/testify/assert"
)

func TestStripEmptyEnumBranches(t *testing.T) {
	t.Parallel()

	s := &document.Schema{Type: "string", Enum: []any{}}
	doc := docWithRootSchema(s)

	normalizer.StripEmptyEnumBranches(doc)

	assert.Nil(t, rootSchema(doc).Enum)
}

func TestStripEmptyEnumBranches_LeavesNonEmptyEnumAlone(t *testing.T) {
	t.Parallel()

	s := &document.Schema{Type: "string", Enum: []any{"a"}}
	doc := docWithRootSchema(s)

	normalizer.StripEmptyEnumBranches(doc)

	assert.Equal(t, []any{"a"}, rootSchema(doc).Enum)
}
