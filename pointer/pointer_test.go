package pointer_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/pointer"
	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	t.Parallel()

	p := pointer.From("hello")
	assert.NotNil(t, p)
	assert.Equal(t, "hello", *p)
}

func TestValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", pointer.Value(pointer.From("hello")))
	assert.Equal(t, "", pointer.Value[string](nil))
	assert.Equal(t, 0, pointer.Value[int](nil))
}
