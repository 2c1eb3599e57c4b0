package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oasnormalize/rewriter/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docA = `
openapi: 3.0.3
info:
  title: A
  version: "1.0"
paths:
  /a:
    get:
      responses:
        "200":
          description: ok
components:
  schemas: {}
`

const docB = `
openapi: 3.0.3
info:
  title: B
  version: "1.0"
paths:
  /b:
    get:
      responses:
        "200":
          description: ok
components:
  schemas: {}
`

func TestRun_ProcessesEveryJobIndependently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcA := filepath.Join(dir, "a.yaml")
	srcB := filepath.Join(dir, "b.yaml")
	dstA := filepath.Join(dir, "a.json")
	dstB := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(srcA, []byte(docA), 0o644))
	require.NoError(t, os.WriteFile(srcB, []byte(docB), 0o644))

	results := batch.Run(context.Background(), []batch.Job{
		{Name: "a", SourcePath: srcA, TargetPath: dstA},
		{Name: "b", SourcePath: srcB, TargetPath: dstB},
		{Name: "missing", SourcePath: filepath.Join(dir, "nope.yaml"), TargetPath: filepath.Join(dir, "nope.json")},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "b", results[1].Name)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "missing", results[2].Name)
	assert.Error(t, results[2].Err)

	_, err := os.Stat(dstA)
	assert.NoError(t, err)
	_, err = os.Stat(dstB)
	assert.NoError(t, err)
}
