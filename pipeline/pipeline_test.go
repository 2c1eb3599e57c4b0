package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oasnormalize/rewriter/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDoc = `
openapi: 3.0.3
info:
  title: Demo
  version: "1.0"
paths:
  /widgets/{id}/sub/{id}:
    get:
      responses:
        "2xx":
          description: ""
          content:
            application/json:
              schema:
                type: object
                properties:
                  status:
                    enum: [active, retired]
components:
  schemas: {}
`

func TestFix_ProducesSerializedTargetAndLedger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(fixtureDoc), 0o644))

	result, err := pipeline.Fix(context.Background(), src, dst)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Applied)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))

	paths := m["paths"].(map[string]any)
	require.Len(t, paths, 1)
	for path, item := range paths {
		itemMap := item.(map[string]any)
		get := itemMap["get"].(map[string]any)
		responses := get["responses"].(map[string]any)
		_, hasAlias := responses["2XX"]
		assert.True(t, hasAlias, "expected status alias 2XX in %s", path)
	}
}

func TestFix_DryRunSkipsWritingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(fixtureDoc), 0o644))

	_, err := pipeline.Fix(context.Background(), src, dst, pipeline.WithDryRun(true))
	require.NoError(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFix_CancelledContextStopsRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(fixtureDoc), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Fix(ctx, src, dst)
	require.Error(t, err)
}

// s2FixtureDoc reproduces spec.md §8 S2: an operation named "Pet" collides
// with a component schema also named "Pet".
const s2FixtureDoc = `
openapi: 3.0.3
info:
  title: Demo
  version: "1.0"
paths:
  /pets:
    get:
      operationId: Pet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
`

func TestFix_S2_SchemaOperationNameCollisionRenamesToBodySuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(s2FixtureDoc), 0o644))

	_, err := pipeline.Fix(context.Background(), src, dst)
	require.NoError(t, err)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))

	schemas := m["components"].(map[string]any)["schemas"].(map[string]any)
	_, stillPresent := schemas["Pet"]
	assert.False(t, stillPresent, "colliding schema should be renamed away from its original name")
	_, renamed := schemas["PetBody"]
	assert.True(t, renamed, "expected schema renamed to PetBody per spec.md §8 S2")

	op := m["paths"].(map[string]any)["/pets"].(map[string]any)["get"].(map[string]any)
	schemaRef := op["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	assert.Equal(t, "#/components/schemas/PetBody", schemaRef)
}

// s6FixtureDoc reproduces spec.md §8 S6: a response schema whose $ref
// leaked out of an example into the path-item tree.
const s6FixtureDoc = `
openapi: 3.0.3
info:
  title: Demo
  version: "1.0"
paths:
  /pets:
    post:
      operationId: CreatePet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/paths/~1pets/post/responses/200/content/application~1json/example"
components:
  schemas: {}
`

func TestFix_S6_RetargetsLeakedPathExampleRef(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(s6FixtureDoc), 0o644))

	result, err := pipeline.Fix(context.Background(), src, dst)
	require.NoError(t, err)

	var sawRetarget bool
	for _, a := range result.Applied {
		if a.Pass == "retarget_path_example_refs" {
			sawRetarget = true
		}
	}
	assert.True(t, sawRetarget, "expected retarget_path_example_refs to have run")

	out, err := os.ReadFile(dst)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))

	op := m["paths"].(map[string]any)["/pets"].(map[string]any)["post"].(map[string]any)
	schemaRef := op["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	assert.Equal(t, "#/components/schemas/ExamplePayload", schemaRef)

	schemas := m["components"].(map[string]any)["schemas"].(map[string]any)
	example, ok := schemas["ExamplePayload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", example["type"])
}
