package naming_test

import (
	"testing"

	"github.com/oasnormalize/rewriter/naming"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pet_Model", naming.Sanitize("Pet Model"))
	assert.Equal(t, "a_b_c", naming.Sanitize("a.b/c"))
	assert.Equal(t, "", naming.Sanitize(""))
}

func TestValidateComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UnnamedComponent", naming.ValidateComponent(""))
	assert.Equal(t, "C1Pet", naming.ValidateComponent("1Pet"))
	assert.Equal(t, "Pet", naming.ValidateComponent("Pet"))
	assert.Equal(t, "Pet_Model", naming.ValidateComponent("Pet Model"))
}

func TestNormalizeOpID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unnamed", naming.NormalizeOpID(""))
	assert.Equal(t, "get-pets-id", naming.NormalizeOpID("get /pets/{id}"))
	assert.Equal(t, "op-1pets", naming.NormalizeOpID("1pets"))
	assert.Equal(t, "listPets", naming.NormalizeOpID("listPets()"))
}

func TestIsValidIdentifier(t *testing.T) {
	t.Parallel()

	assert.True(t, naming.IsValidIdentifier("a-b.c_1"))
	assert.False(t, naming.IsValidIdentifier(""))
	assert.False(t, naming.IsValidIdentifier("a b"))
}

func TestIsStrictIdentifier(t *testing.T) {
	t.Parallel()

	assert.True(t, naming.IsStrictIdentifier("Pet_1"))
	assert.False(t, naming.IsStrictIdentifier("1Pet"))
	assert.False(t, naming.IsStrictIdentifier("Pet-1"))
}

func TestMediaTypeSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Json", naming.MediaTypeSuffix("application/json"))
	assert.Equal(t, "Json", naming.MediaTypeSuffix("application/json; charset=utf-8"))
	assert.Equal(t, "XmlVndApi", naming.MediaTypeSuffix("application/x-xml-vnd-api"))
	assert.Equal(t, "WwwFormUrlencoded", naming.MediaTypeSuffix("application/x-www-form-urlencoded"))
}

func TestDisambiguate(t *testing.T) {
	t.Parallel()

	taken := naming.NewCaseInsensitiveSet("Pet", "pet_1")
	assert.Equal(t, "Pet_2", naming.Disambiguate("Pet", taken))
	assert.Equal(t, "Dog", naming.Disambiguate("Dog", taken))
}
