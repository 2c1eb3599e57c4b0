package rewriter

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/refs"
)

// isSimpleEnvelope reports whether s is a single-property "data" envelope
// referencing a component, with at most one required field — the shape
// extract_inline_schemas leaves alone (spec.md §4.5).
func isSimpleEnvelope(s *document.Schema) bool {
	if s == nil || s.Properties.Len() != 1 {
		return false
	}
	data, ok := s.Properties.Get("data")
	if !ok || !data.IsReference() {
		return false
	}
	return len(s.Required) <= 1
}

// ExtractInlineRequestResponseSchemas promotes every non-envelope inline
// request-body and response media-type schema to a named component, and
// collapses a parameter's single-media-type content into its schema
// (spec.md §4.5 Extract inline schemas).
func ExtractInlineRequestResponseSchemas(doc *document.Document) {
	taken := namingTakenSet(doc)
	ensureComponents := func() {
		if doc.Components == nil {
			doc.Components = &document.Components{}
		}
	}

	forEachOperation(doc, func(op *document.Operation) {
		if op.RequestBody != nil && !op.RequestBody.IsReference() && op.RequestBody.Body != nil && op.RequestBody.Body.Content != nil {
			for media, mt := range op.RequestBody.Body.Content.All() {
				if mt.Schema == nil || mt.Schema.IsReference() || mt.Schema.Schema == nil {
					continue
				}
				if isSimpleEnvelope(mt.Schema.Schema) {
					continue
				}
				primary := op.OperationID + naming.MediaTypeSuffix(media)
				name := primary
				if taken.Has(name) {
					name = op.OperationID + "RequestBody_" + naming.MediaTypeSuffix(media)
				}
				name = naming.Disambiguate(name, taken)
				taken.Add(name)
				ensureComponents()
				if doc.Components.Schemas == nil {
					doc.Components.Schemas = newSchemaMap()
				}
				doc.Components.Schemas.Set(name, document.Inline(mt.Schema.Schema))
				mt.Schema = document.Reference(refs.NewComponent("schemas", name))
			}
		}

		if op.Responses != nil {
			for status, r := range op.Responses.All() {
				if r == nil || r.IsReference() || r.Response == nil || r.Response.Content == nil {
					continue
				}
				for media, mt := range r.Response.Content.All() {
					if mt.Schema == nil || mt.Schema.IsReference() || mt.Schema.Schema == nil {
						continue
					}
					if isSimpleEnvelope(mt.Schema.Schema) {
						continue
					}
					name := naming.Disambiguate(op.OperationID+"_"+status+"_Response_"+naming.MediaTypeSuffix(media), taken)
					taken.Add(name)
					ensureComponents()
					if doc.Components.Schemas == nil {
						doc.Components.Schemas = newSchemaMap()
					}
					doc.Components.Schemas.Set(name, document.Inline(mt.Schema.Schema))
					mt.Schema = document.Reference(refs.NewComponent("schemas", name))
				}
			}
		}

		collapseParamContent(op.Parameters)
	})

	if doc.Paths != nil {
		for _, item := range doc.Paths.All() {
			if item != nil {
				collapseParamContent(item.Parameters)
			}
		}
	}
	if doc.Components != nil && doc.Components.Parameters != nil {
		for _, p := range doc.Components.Parameters.All() {
			if p != nil {
				collapseSingleMediaContent(p)
			}
		}
	}
}

func collapseParamContent(params []*document.ParameterOrRef) {
	for _, p := range params {
		if p == nil || p.IsReference() || p.Parameter == nil {
			continue
		}
		collapseSingleMediaContent(p.Parameter)
	}
}

func collapseSingleMediaContent(p *document.Parameter) {
	if p.Content == nil || p.Content.Len() != 1 {
		return
	}
	for _, mt := range p.Content.All() {
		p.Schema = mt.Schema
		break
	}
	p.Content = nil
}
