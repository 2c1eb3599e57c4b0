package document

import (
	"iter"
	"strconv"

	"github.com/oasnormalize/rewriter/orderedmap"
)

// SchemaSlot is a single (owner, field, schema-slot) location in the
// document, as described in spec.md §4.1. Get/Set let a pass read or
// replace the slot's value without the walker needing to expose raw
// pointers into slices and maps — replacing the slot is always done
// through Set so a single pass over the document can rewrite references
// without duplicating the schema (spec.md §4.1, last sentence).
type SchemaSlot struct {
	// Location is a breadcrumb for diagnostics, e.g.
	// "components.schemas.Pet.properties.owner".
	Location string
	Get      func() *SchemaOrRef
	Set      func(*SchemaOrRef)
}

// WalkSchemaSlots returns an iterator over every schema slot in doc:
// components, path/operation-level parameters, request-body and response
// content, headers, and nested composition (spec.md §4.1). Iteration uses
// a visited-set keyed by *Schema identity so a document built with aliased
// (shared-pointer) inline schemas cannot cause non-termination; ordinary
// cyclic $ref graphs never need the guard because References are leaves —
// the walker never dereferences a $ref to recurse into its target.
func WalkSchemaSlots(doc *Document) iter.Seq[SchemaSlot] {
	return func(yield func(SchemaSlot) bool) {
		if doc == nil {
			return
		}
		visited := make(map[*Schema]bool)

		if doc.Components != nil {
			if doc.Components.Schemas != nil {
				for name := range doc.Components.Schemas.All() {
					name := name
					loc := "components.schemas." + name
					if !walkSlot(loc, func() *SchemaOrRef { s, _ := doc.Components.Schemas.Get(name); return s },
						func(v *SchemaOrRef) { doc.Components.Schemas.Set(name, v) }, visited, yield) {
						return
					}
				}
			}
			if !walkComponentObjects(doc.Components, visited, yield) {
				return
			}
		}

		if doc.Paths != nil {
			for path, item := range doc.Paths.All() {
				if !walkPathItem("paths."+path, item, visited, yield) {
					return
				}
			}
		}
	}
}

// walkSlot yields slot itself, then recurses into its nested schema
// locations if it is Inline (a Reference is a leaf — see doc comment).
func walkSlot(loc string, get func() *SchemaOrRef, set func(*SchemaOrRef), visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	if !yield(SchemaSlot{Location: loc, Get: get, Set: set}) {
		return false
	}

	cur := get()
	if cur == nil || cur.IsReference() || cur.Schema == nil {
		return true
	}
	s := cur.Schema
	if visited[s] {
		return true
	}
	visited[s] = true

	if s.Properties != nil {
		for name := range s.Properties.All() {
			name := name
			propLoc := loc + ".properties." + name
			if !walkSlot(propLoc,
				func() *SchemaOrRef { v, _ := s.Properties.Get(name); return v },
				func(v *SchemaOrRef) { s.Properties.Set(name, v) },
				visited, yield) {
				return false
			}
		}
	}

	if s.Items != nil {
		if !walkSlot(loc+".items",
			func() *SchemaOrRef { return s.Items },
			func(v *SchemaOrRef) { s.Items = v },
			visited, yield) {
			return false
		}
	}

	if s.AdditionalProperties != nil {
		if !walkSlot(loc+".additionalProperties",
			func() *SchemaOrRef { return s.AdditionalProperties },
			func(v *SchemaOrRef) { s.AdditionalProperties = v },
			visited, yield) {
			return false
		}
	}

	if !walkCompositionList(loc, "allOf", &s.AllOf, visited, yield) {
		return false
	}
	if !walkCompositionList(loc, "oneOf", &s.OneOf, visited, yield) {
		return false
	}
	if !walkCompositionList(loc, "anyOf", &s.AnyOf, visited, yield) {
		return false
	}

	return true
}

func walkCompositionList(loc, field string, list *[]*SchemaOrRef, visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	for i := range *list {
		i := i
		branchLoc := loc + "." + field + "[" + itoa(i) + "]"
		if !walkSlot(branchLoc,
			func() *SchemaOrRef { return (*list)[i] },
			func(v *SchemaOrRef) { (*list)[i] = v },
			visited, yield) {
			return false
		}
	}
	return true
}

func walkMediaTypes(loc string, content *orderedmap.Map[string, *MediaType], visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	if content == nil {
		return true
	}
	for media, mt := range content.All() {
		media := media
		mtLoc := loc + ".content." + media
		if mt == nil {
			continue
		}
		if !walkSlot(mtLoc+".schema",
			func() *SchemaOrRef { return mt.Schema },
			func(v *SchemaOrRef) { mt.Schema = v },
			visited, yield) {
			return false
		}
	}
	return true
}

func walkParameters(loc string, params []*ParameterOrRef, visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	for i, p := range params {
		if p == nil || p.IsReference() || p.Parameter == nil {
			continue
		}
		pLoc := loc + ".parameters[" + itoa(i) + "]"
		param := p.Parameter
		if !walkSlot(pLoc+".schema",
			func() *SchemaOrRef { return param.Schema },
			func(v *SchemaOrRef) { param.Schema = v },
			visited, yield) {
			return false
		}
		if !walkMediaTypes(pLoc, param.Content, visited, yield) {
			return false
		}
	}
	return true
}

func walkPathItem(loc string, item *PathItem, visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	if item == nil {
		return true
	}
	if !walkParameters(loc, item.Parameters, visited, yield) {
		return false
	}
	if item.Operations == nil {
		return true
	}
	for method, op := range item.Operations.All() {
		if !walkOperation(loc+"."+string(method), op, visited, yield) {
			return false
		}
	}
	return true
}

func walkOperation(loc string, op *Operation, visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	if op == nil {
		return true
	}
	if !walkParameters(loc, op.Parameters, visited, yield) {
		return false
	}
	if op.RequestBody != nil && !op.RequestBody.IsReference() && op.RequestBody.Body != nil {
		if !walkMediaTypes(loc+".requestBody", op.RequestBody.Body.Content, visited, yield) {
			return false
		}
	}
	if op.Responses != nil {
		for status, r := range op.Responses.All() {
			if r == nil || r.IsReference() || r.Response == nil {
				continue
			}
			rLoc := loc + ".responses." + status
			if !walkMediaTypes(rLoc, r.Response.Content, visited, yield) {
				return false
			}
			if r.Response.Headers != nil {
				for name, h := range r.Response.Headers.All() {
					if h == nil || h.IsReference() || h.Header == nil {
						continue
					}
					hLoc := rLoc + ".headers." + name
					header := h.Header
					if !walkSlot(hLoc+".schema",
						func() *SchemaOrRef { return header.Schema },
						func(v *SchemaOrRef) { header.Schema = v },
						visited, yield) {
						return false
					}
					if !walkMediaTypes(hLoc, header.Content, visited, yield) {
						return false
					}
				}
			}
		}
	}
	return true
}

// walkComponentObjects covers the schema slots embedded in component-level
// parameters/requestBodies/responses/headers themselves (spec.md §4.2
// dispatch catalogue).
func walkComponentObjects(c *Components, visited map[*Schema]bool, yield func(SchemaSlot) bool) bool {
	if c.Parameters != nil {
		for name, p := range c.Parameters.All() {
			if p == nil {
				continue
			}
			loc := "components.parameters." + name
			if !walkSlot(loc+".schema",
				func() *SchemaOrRef { return p.Schema },
				func(v *SchemaOrRef) { p.Schema = v },
				visited, yield) {
				return false
			}
			if !walkMediaTypes(loc, p.Content, visited, yield) {
				return false
			}
		}
	}
	if c.RequestBodies != nil {
		for name, rb := range c.RequestBodies.All() {
			if rb == nil {
				continue
			}
			if !walkMediaTypes("components.requestBodies."+name, rb.Content, visited, yield) {
				return false
			}
		}
	}
	if c.Responses != nil {
		for name, r := range c.Responses.All() {
			if r == nil {
				continue
			}
			loc := "components.responses." + name
			if !walkMediaTypes(loc, r.Content, visited, yield) {
				return false
			}
			if r.Headers != nil {
				for hname, h := range r.Headers.All() {
					if h == nil || h.IsReference() || h.Header == nil {
						continue
					}
					hLoc := loc + ".headers." + hname
					header := h.Header
					if !walkSlot(hLoc+".schema",
						func() *SchemaOrRef { return header.Schema },
						func(v *SchemaOrRef) { header.Schema = v },
						visited, yield) {
						return false
					}
				}
			}
		}
	}
	if c.Headers != nil {
		for name, h := range c.Headers.All() {
			if h == nil {
				continue
			}
			loc := "components.headers." + name
			if !walkSlot(loc+".schema",
				func() *SchemaOrRef { return h.Schema },
				func(v *SchemaOrRef) { h.Schema = v },
				visited, yield) {
				return false
			}
			if !walkMediaTypes(loc, h.Content, visited, yield) {
				return false
			}
		}
	}
	return true
}

func itoa(i int) string { return strconv.Itoa(i) }
