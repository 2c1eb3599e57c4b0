package normalizer

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
)

// FixYAMLUnsafeDescriptions quotes every description/summary/title string
// in the document that would otherwise be misread when re-emitted as YAML:
// anything containing ": ", or starting or ending with ":" and not already
// quoted (spec.md §4.4 Fix YAML-unsafe descriptions).
func FixYAMLUnsafeDescriptions(doc *document.Document) {
	if doc == nil {
		return
	}

	doc.Info.Title = quoteYAMLUnsafe(doc.Info.Title)
	doc.Info.Description = quoteYAMLUnsafe(doc.Info.Description)
	doc.Info.Summary = quoteYAMLUnsafe(doc.Info.Summary)

	forEachSchemaNode(doc, func(s *document.Schema) {
		s.Description = quoteYAMLUnsafe(s.Description)
		s.Title = quoteYAMLUnsafe(s.Title)
	})

	if doc.Paths == nil {
		return
	}
	for _, item := range doc.Paths.All() {
		if item == nil {
			continue
		}
		item.Summary = quoteYAMLUnsafe(item.Summary)
		item.Description = quoteYAMLUnsafe(item.Description)

		fixParamDescriptions(item.Parameters)

		if item.Operations == nil {
			continue
		}
		for _, op := range item.Operations.All() {
			fixOperationDescriptions(op)
		}
	}

	fixComponentDescriptions(doc.Components)
}

func fixOperationDescriptions(op *document.Operation) {
	if op == nil {
		return
	}
	op.Summary = quoteYAMLUnsafe(op.Summary)
	op.Description = quoteYAMLUnsafe(op.Description)

	fixParamDescriptions(op.Parameters)

	if op.RequestBody != nil && !op.RequestBody.IsReference() && op.RequestBody.Body != nil {
		op.RequestBody.Body.Description = quoteYAMLUnsafe(op.RequestBody.Body.Description)
	}
	if op.Responses == nil {
		return
	}
	for _, r := range op.Responses.All() {
		if r == nil || r.IsReference() || r.Response == nil {
			continue
		}
		r.Response.Description = quoteYAMLUnsafe(r.Response.Description)
		fixHeaderDescriptions(r.Response.Headers)
	}
}

func fixParamDescriptions(params []*document.ParameterOrRef) {
	for _, p := range params {
		if p == nil || p.IsReference() || p.Parameter == nil {
			continue
		}
		p.Parameter.Description = quoteYAMLUnsafe(p.Parameter.Description)
	}
}

func fixHeaderDescriptions(headers *orderedmap.Map[string, *document.HeaderOrRef]) {
	if headers == nil {
		return
	}
	for _, h := range headers.All() {
		if h == nil || h.IsReference() || h.Header == nil {
			continue
		}
		h.Header.Description = quoteYAMLUnsafe(h.Header.Description)
	}
}

func fixComponentDescriptions(c *document.Components) {
	if c == nil {
		return
	}
	if c.Parameters != nil {
		for _, p := range c.Parameters.All() {
			if p != nil {
				p.Description = quoteYAMLUnsafe(p.Description)
			}
		}
	}
	if c.RequestBodies != nil {
		for _, rb := range c.RequestBodies.All() {
			if rb != nil {
				rb.Description = quoteYAMLUnsafe(rb.Description)
			}
		}
	}
	if c.Responses != nil {
		for _, r := range c.Responses.All() {
			if r == nil {
				continue
			}
			r.Description = quoteYAMLUnsafe(r.Description)
			fixHeaderDescriptions(r.Headers)
		}
	}
	if c.Headers != nil {
		for _, h := range c.Headers.All() {
			if h != nil {
				h.Description = quoteYAMLUnsafe(h.Description)
			}
		}
	}
}
