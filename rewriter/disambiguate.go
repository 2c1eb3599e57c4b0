package rewriter

import (
	"strings"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/refengine"
)

// DisambiguateMultiContentRequestSchemas renames the component schema that
// a request-body media type references, for an operation with more than
// one request content type, when its name equals the operation's own ID
// case-insensitively: it becomes "<name>Body", or "<name>Dto" when that is
// taken, numbered if still taken (spec.md §4.5 Disambiguate multi-content
// request schemas). Inline media-type schemas are not touched; the pass
// runs before extract_inline_schemas.
func DisambiguateMultiContentRequestSchemas(doc *document.Document) {
	forEachOperation(doc, func(op *document.Operation) {
		if op.RequestBody == nil || op.RequestBody.IsReference() || op.RequestBody.Body == nil {
			return
		}
		if op.RequestBody.Body.Content == nil || op.RequestBody.Body.Content.Len() <= 1 {
			return
		}
		for _, mt := range op.RequestBody.Body.Content.All() {
			if mt.Schema == nil || !mt.Schema.IsReference() {
				continue
			}
			name, ok := mt.Schema.Ref.ComponentName("schemas")
			if !ok || !strings.EqualFold(name, op.OperationID) {
				continue
			}
			taken := namingTakenSet(doc)
			candidate := name + "Body"
			if taken.Has(candidate) {
				candidate = name + "Dto"
			}
			candidate = naming.Disambiguate(candidate, taken)
			refengine.Rename(doc, []refengine.Mapping{{Old: name, New: candidate}})
		}
	})
}

// FixContentTypeWrapperCollisions renames any pre-existing component whose
// name collides with the "<operationId><mediaType>" pattern reserved for
// synthesized request wrappers (spec.md §4.5 Fix content-type wrapper
// collisions).
func FixContentTypeWrapperCollisions(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}
	forEachOperation(doc, func(op *document.Operation) {
		if op.RequestBody == nil || op.RequestBody.IsReference() || op.RequestBody.Body == nil || op.RequestBody.Body.Content == nil {
			return
		}
		for media := range op.RequestBody.Body.Content.All() {
			reserved := op.OperationID + strings.ReplaceAll(media, "/", "_")
			if !doc.Components.Schemas.Has(reserved) {
				continue
			}
			taken := namingTakenSet(doc)
			candidate := naming.Disambiguate(reserved+"Body", taken)
			refengine.Rename(doc, []refengine.Mapping{{Old: reserved, New: candidate}})
		}
	})
}
