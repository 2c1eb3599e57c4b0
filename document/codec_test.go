package document_test

import (
	"encoding/json"
	"testing"

	"github.com/oasnormalize/rewriter/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
openapi: 3.0.3
info:
  title: Pet Store
  version: "1.0"
paths:
  /pets/{id}:
    get:
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
        tag:
          type: string
          additionalProperties: false
      required:
        - name
`

func TestParse_DecodesPathsOperationsAndRefs(t *testing.T) {
	t.Parallel()

	doc, diags, err := document.Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Pet Store", doc.Info.Title)

	item, ok := doc.Paths.Get("/pets/{id}")
	require.True(t, ok)
	require.NotNil(t, item.Operations)
	op, ok := item.Operations.Get(document.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "getPet", op.OperationID)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Parameter.Name)

	resp, ok := op.Responses.Get("200")
	require.True(t, ok)
	require.NotNil(t, resp.Response)
	media, ok := resp.Response.Content.Get("application/json")
	require.True(t, ok)
	require.True(t, media.Schema.IsReference())

	pet, ok := doc.Components.Schemas.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, "object", pet.Schema.Type)
	assert.Contains(t, pet.Schema.Required, "name")
}

func TestSerialize_RoundTripsThroughJSON(t *testing.T) {
	t.Parallel()

	doc, _, err := document.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	out, err := document.Serialize(doc)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "3.0.3", m["openapi"])

	paths := m["paths"].(map[string]any)
	petPath := paths["/pets/{id}"].(map[string]any)
	get := petPath["get"].(map[string]any)
	assert.Equal(t, "getPet", get["operationId"])
}
