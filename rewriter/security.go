package rewriter

import (
	"strings"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/orderedmap"
)

const bearerSchemeBaseName = "bearerAuth"

// EnsureSecuritySchemes replaces an operation's hand-rolled header
// "Authorization" parameter with a proper bearer security requirement: a
// generated client treats a header parameter and an auth scheme very
// differently, so leaving credentials modeled as a plain header misses the
// client's credential-injection path entirely (spec.md §4.3
// ensure_security_schemes, spec.md §4.6 Stage 1).
func EnsureSecuritySchemes(doc *document.Document) {
	if doc.Paths == nil {
		return
	}

	var schemeName string
	for _, item := range doc.Paths.All() {
		if item == nil {
			continue
		}
		item.Parameters, _ = extractAuthorizationHeader(item.Parameters)
		if item.Operations == nil {
			continue
		}
		for _, op := range item.Operations.All() {
			if op == nil {
				continue
			}
			var found bool
			op.Parameters, found = extractAuthorizationHeader(op.Parameters)
			if !found {
				continue
			}
			if schemeName == "" {
				schemeName = ensureBearerScheme(doc)
			}
			schemes := orderedmap.New[string, []string]()
			schemes.Set(schemeName, []string{})
			op.Security = append(op.Security, document.SecurityRequirement{Schemes: schemes})
		}
	}
}

func extractAuthorizationHeader(params []*document.ParameterOrRef) ([]*document.ParameterOrRef, bool) {
	found := false
	kept := params[:0]
	for _, p := range params {
		if p != nil && !p.IsReference() && p.Parameter != nil &&
			p.Parameter.In == document.ParameterInHeader &&
			strings.EqualFold(p.Parameter.Name, "Authorization") {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	return kept, found
}

func ensureBearerScheme(doc *document.Document) string {
	if doc.Components == nil {
		doc.Components = &document.Components{}
	}
	if doc.Components.SecuritySchemes == nil {
		doc.Components.SecuritySchemes = orderedmap.New[string, *document.SecurityScheme]()
	}

	taken := make(naming.CaseInsensitiveSet)
	for name := range doc.Components.SecuritySchemes.All() {
		taken.Add(name)
	}

	for name, scheme := range doc.Components.SecuritySchemes.All() {
		if scheme != nil && scheme.Type == "http" && scheme.Scheme == "bearer" {
			return name
		}
	}

	name := naming.Disambiguate(bearerSchemeBaseName, taken)
	doc.Components.SecuritySchemes.Set(name, &document.SecurityScheme{
		Type:   "http",
		Scheme: "bearer",
	})
	return name
}
