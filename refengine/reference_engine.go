// Package refengine implements the reference engine (spec.md §4.2):
// resolving, validating, renaming, and rewriting `$ref` targets everywhere
// a schema slot can hold one. It is grounded on the exhaustive-dispatch
// Walk/Matcher approach the document package's WalkSchemaSlots already
// provides, rather than a hand-rolled recursive visitor per operation.
package refengine

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/oasnormalize/rewriter/rewritelog"
)

// Resolve looks up a component schema reference against
// components.schemas. Returns nil, false if ref isn't a schema reference
// or the target doesn't exist.
func Resolve(doc *document.Document, ref refs.Reference) (*document.Schema, bool) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, false
	}
	name, ok := ref.ComponentName("schemas")
	if !ok {
		return nil, false
	}
	slot, ok := doc.Components.Schemas.Get(name)
	if !ok || slot.IsReference() {
		return nil, false
	}
	return slot.Schema, true
}

// IsValid reports whether ref's target exists (spec.md §4.2 is_valid).
func IsValid(doc *document.Document, ref refs.Reference) bool {
	if doc.Components == nil {
		return false
	}
	name, ok := ref.ComponentName("schemas")
	return ok && doc.Components.Schemas.Has(name)
}

// ReplaceAll rewrites every schema slot in doc whose value is a reference
// to oldID (a bare component name in components.schemas) to reference
// newID instead. Dispatch is exhaustive over every slot WalkSchemaSlots
// covers: component schemas (recursively), every operation-level
// request/response/parameter schema, and every component-level
// parameter/requestBody/response/header schema slot.
func ReplaceAll(doc *document.Document, oldID, newID string) {
	oldRef := refs.NewComponent("schemas", oldID)
	newRef := refs.NewComponent("schemas", newID)

	for slot := range document.WalkSchemaSlots(doc) {
		cur := slot.Get()
		if cur == nil || !cur.IsReference() {
			continue
		}
		if *cur.Ref == oldRef {
			slot.Set(document.Reference(newRef))
		}
	}
}

// Rename applies every (old, new) pair in mapping via ReplaceAll, in the
// mapping's insertion order, then rewrites components.schemas' own keys
// to match (spec.md §4.2 rename). mapping is a plain slice, applied in
// slice order, so iteration order is deterministic; callers build it with
// naming.Disambiguate and friends.
func Rename(doc *document.Document, mapping []Mapping) {
	for _, m := range mapping {
		ReplaceAll(doc, m.Old, m.New)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}
	for _, m := range mapping {
		slot, ok := doc.Components.Schemas.Get(m.Old)
		if !ok {
			continue
		}
		doc.Components.Schemas.Delete(m.Old)
		doc.Components.Schemas.Set(m.New, slot)
	}
}

// Mapping is a single old-name -> new-name schema rename, applied in slice
// order so the caller controls determinism (spec.md §4.2 rename: "Order is
// deterministic by insertion order of mapping").
type Mapping struct {
	Old string
	New string
}

// ScrubAll traverses every schema slot in doc and logs (never removes) any
// reference whose target is missing. No pass in the pipeline removes
// dangling references: each scrub only logs them, and a reference still
// dangling after the final scrub is serialized as it is.
func ScrubAll(doc *document.Document, log rewritelog.Logger) {
	if log == nil {
		log = rewritelog.NopLogger{}
	}
	for slot := range document.WalkSchemaSlots(doc) {
		cur := slot.Get()
		if cur == nil || !cur.IsReference() {
			continue
		}
		if !IsValid(doc, *cur.Ref) {
			log.Warn("dangling schema reference", "location", slot.Location, "ref", cur.Ref.String())
		}
	}
}

// exampleComponentName is the synthetic schema retarget_path_example_refs
// creates on demand.
const exampleComponentName = "ExamplePayload"

// RetargetPathExampleRefs rewrites any schema slot whose $ref target starts
// with "#/paths/..." to reference a synthetic ExamplePayload component of
// type object, creating that component the first time it's needed
// (spec.md §4.2 retarget_path_example_refs).
func RetargetPathExampleRefs(doc *document.Document) {
	var created bool
	ensureExampleComponent := func() refs.Reference {
		ref := refs.NewComponent("schemas", exampleComponentName)
		if created {
			return ref
		}
		if doc.Components == nil {
			doc.Components = &document.Components{}
		}
		if doc.Components.Schemas == nil {
			doc.Components.Schemas = orderedmap.New[string, *document.SchemaOrRef]()
		}
		if !doc.Components.Schemas.Has(exampleComponentName) {
			doc.Components.Schemas.Set(exampleComponentName, document.Inline(&document.Schema{Type: "object"}))
		}
		created = true
		return ref
	}

	for slot := range document.WalkSchemaSlots(doc) {
		cur := slot.Get()
		if cur == nil || !cur.IsReference() {
			continue
		}
		if cur.Ref.IsPathExampleRef() {
			slot.Set(document.Reference(ensureExampleComponent()))
		}
	}
}
