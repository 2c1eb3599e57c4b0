// Package rewriter implements the structural rewriter (spec.md §4.5): the
// passes that change the graph's shape rather than just cleaning values in
// place — inlining primitive components, extracting anonymous schemas into
// named components, disambiguating polymorphism, and the path-rename
// heuristics.
package rewriter

import (
	"strings"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/orderedmap"
)

// newSchemaMap builds an empty components.schemas-shaped map, for passes
// that may need to create doc.Components.Schemas from scratch.
func newSchemaMap() *orderedmap.Map[string, *document.SchemaOrRef] {
	return orderedmap.New[string, *document.SchemaOrRef]()
}

func isNestedLocation(loc string) bool {
	for _, marker := range []string{".properties.", ".items", ".additionalProperties", ".allOf[", ".oneOf[", ".anyOf["} {
		if strings.Contains(loc, marker) {
			return true
		}
	}
	return false
}

func forEachRootSchema(doc *document.Document, fn func(s *document.Schema)) {
	for slot := range document.WalkSchemaSlots(doc) {
		if isNestedLocation(slot.Location) {
			continue
		}
		cur := slot.Get()
		if cur == nil || cur.IsReference() || cur.Schema == nil {
			continue
		}
		fn(cur.Schema)
	}
}

func walkSchemaTree(root *document.Schema, visited map[*document.Schema]bool, fn func(*document.Schema)) {
	if root == nil || visited[root] {
		return
	}
	visited[root] = true
	fn(root)

	if root.Properties != nil {
		for _, v := range root.Properties.All() {
			if v != nil && !v.IsReference() && v.Schema != nil {
				walkSchemaTree(v.Schema, visited, fn)
			}
		}
	}
	if root.Items != nil && !root.Items.IsReference() && root.Items.Schema != nil {
		walkSchemaTree(root.Items.Schema, visited, fn)
	}
	if root.AdditionalProperties != nil && !root.AdditionalProperties.IsReference() && root.AdditionalProperties.Schema != nil {
		walkSchemaTree(root.AdditionalProperties.Schema, visited, fn)
	}
	for _, list := range [][]*document.SchemaOrRef{root.AllOf, root.OneOf, root.AnyOf} {
		for _, b := range list {
			if b != nil && !b.IsReference() && b.Schema != nil {
				walkSchemaTree(b.Schema, visited, fn)
			}
		}
	}
}

func forEachSchemaNode(doc *document.Document, fn func(*document.Schema)) {
	visited := make(map[*document.Schema]bool)
	forEachRootSchema(doc, func(root *document.Schema) {
		walkSchemaTree(root, visited, fn)
	})
}

// forEachOperation calls fn for every operation in every path item.
func forEachOperation(doc *document.Document, fn func(op *document.Operation)) {
	if doc.Paths == nil {
		return
	}
	for _, item := range doc.Paths.All() {
		if item == nil || item.Operations == nil {
			continue
		}
		for _, op := range item.Operations.All() {
			if op != nil {
				fn(op)
			}
		}
	}
}

// namingTakenSet builds a case-insensitive set of every existing component
// schema name, for passes that need to disambiguate a newly synthesized
// name against the current document state.
func namingTakenSet(doc *document.Document) naming.CaseInsensitiveSet {
	set := make(naming.CaseInsensitiveSet)
	if doc.Components == nil || doc.Components.Schemas == nil {
		return set
	}
	for name := range doc.Components.Schemas.All() {
		set.Add(name)
	}
	return set
}

func removeFromSlice(list []string, target string) []string {
	kept := list[:0]
	for _, v := range list {
		if v != target {
			kept = append(kept, v)
		}
	}
	return kept
}

func containsString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
