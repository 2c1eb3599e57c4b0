package naming

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/refengine"
)

// RenameInvalidComponentSchemas renames every components.schemas entry whose
// key isn't a strict generator identifier to ValidateComponent(key),
// disambiguating collisions, and rewrites every $ref that targeted the old
// key (spec.md §4.3 rename_invalid_component_schemas, spec.md §4.6 Stage 1).
func RenameInvalidComponentSchemas(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}

	names := make([]string, 0, doc.Components.Schemas.Len())
	for name := range doc.Components.Schemas.All() {
		names = append(names, name)
	}

	taken := NewCaseInsensitiveSet(names...)
	var mapping []refengine.Mapping
	for _, name := range names {
		if IsStrictIdentifier(name) {
			continue
		}
		candidate := Disambiguate(ValidateComponent(name), taken)
		taken.Add(candidate)
		mapping = append(mapping, refengine.Mapping{Old: name, New: candidate})
	}

	refengine.Rename(doc, mapping)
}

// ResolveSchemaOperationNameCollisions renames any components.schemas entry
// whose name collides case-insensitively with an operationId: a generated
// client names its response/request model types and its operation methods
// from the same pool, so a collision there would break generation (spec.md
// §4.3 resolve_schema_operation_name_collisions, spec.md §4.6 Stage 1). Runs
// after RenameInvalidComponentSchemas and before EnsureUniqueOperationIDs.
func ResolveSchemaOperationNameCollisions(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}

	opIDs := NewCaseInsensitiveSet(collectOperationIDs(doc)...)
	if len(opIDs) == 0 {
		return
	}

	schemaNames := make([]string, 0, doc.Components.Schemas.Len())
	for name := range doc.Components.Schemas.All() {
		schemaNames = append(schemaNames, name)
	}
	taken := NewCaseInsensitiveSet(schemaNames...)

	var mapping []refengine.Mapping
	for _, name := range schemaNames {
		if !opIDs.Has(name) {
			continue
		}
		candidate := Disambiguate(name+"Body", taken)
		taken.Add(candidate)
		mapping = append(mapping, refengine.Mapping{Old: name, New: candidate})
	}

	refengine.Rename(doc, mapping)
}

// EnsureUniqueOperationIDs normalizes every operationId with NormalizeOpID
// and disambiguates collisions across the whole document, assigning a
// normalized ID to any operation that is missing one entirely (spec.md §4.3
// ensure_unique_operation_ids, spec.md §4.6 Stage 1). Runs last in the
// identifiers stage, after component renames have settled.
func EnsureUniqueOperationIDs(doc *document.Document) {
	if doc.Paths == nil {
		return
	}

	taken := NewCaseInsensitiveSet()
	for path, item := range doc.Paths.All() {
		if item == nil || item.Operations == nil {
			continue
		}
		for method, op := range item.Operations.All() {
			if op == nil {
				continue
			}
			base := op.OperationID
			if base == "" {
				base = string(method) + "_" + path
			}
			candidate := Disambiguate(NormalizeOpID(base), taken)
			taken.Add(candidate)
			op.OperationID = candidate
		}
	}
}

func collectOperationIDs(doc *document.Document) []string {
	if doc.Paths == nil {
		return nil
	}
	var ids []string
	for _, item := range doc.Paths.All() {
		if item == nil || item.Operations == nil {
			continue
		}
		for _, op := range item.Operations.All() {
			if op != nil && op.OperationID != "" {
				ids = append(ids, op.OperationID)
			}
		}
	}
	return ids
}
