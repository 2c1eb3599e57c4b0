package normalizer

import (
	"strconv"
	"strings"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/orderedmap"
)

var formatCanonicalization = map[string]string{
	"datetime": "date-time",
	"uuid4":    "uuid",
}

// ApplySchemaNormalizations bundles the document-wide shape-agnostic
// normalizations stage 4 runs before the deep-clean passes: title
// defaulting from the owning component name, format canonicalization,
// composition-implies-object, discriminator-property presence, response
// status-alias mapping, default response descriptions, enum-type
// inference, and nullable-type injection (spec.md §4.6 Stage 4).
func ApplySchemaNormalizations(doc *document.Document) {
	normalizeComponentSchemas(doc)
	forEachSchemaNode(doc, func(s *document.Schema) {
		canonicalizeFormat(s)
		applyCompositionImpliesObject(s)
		ensureDiscriminatorProperty(s)
		inferEnumType(s)
	})
	InjectNullableType(doc)
	normalizeResponseStatusAliasesAndDescriptions(doc)
}

func normalizeComponentSchemas(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}
	for name, slot := range doc.Components.Schemas.All() {
		if slot.IsReference() || slot.Schema == nil {
			continue
		}
		if slot.Schema.Title == "" {
			slot.Schema.Title = name
		}
	}
}

func canonicalizeFormat(s *document.Schema) {
	if canon, ok := formatCanonicalization[s.Format]; ok {
		s.Format = canon
	}
}

func applyCompositionImpliesObject(s *document.Schema) {
	if s.Type != "" {
		return
	}
	if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		s.Type = "object"
	}
}

func ensureDiscriminatorProperty(s *document.Schema) {
	if s.Discriminator == nil || s.Discriminator.PropertyName == "" {
		return
	}
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *document.SchemaOrRef]()
	}
	if !s.Properties.Has(s.Discriminator.PropertyName) {
		s.Properties.Set(s.Discriminator.PropertyName, document.Inline(&document.Schema{Type: "string"}))
	}
	if !containsRequired(s.Required, s.Discriminator.PropertyName) {
		s.Required = append(s.Required, s.Discriminator.PropertyName)
	}
}

func containsRequired(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

// inferEnumType sets Type from the JSON kind of the enum's elements when
// the schema is untyped — a string element implies "string", a bool
// implies "boolean", a whole-number float implies "integer", any other
// number implies "number".
func inferEnumType(s *document.Schema) {
	if s.Type != "" || len(s.Enum) == 0 {
		return
	}
	switch v := s.Enum[0].(type) {
	case string:
		s.Type = "string"
	case bool:
		s.Type = "boolean"
	case float64:
		if isWholeNumber(v) {
			s.Type = "integer"
		} else {
			s.Type = "number"
		}
	}
}

func normalizeResponseStatusAliasesAndDescriptions(doc *document.Document) {
	if doc.Paths == nil {
		return
	}
	for _, item := range doc.Paths.All() {
		if item == nil || item.Operations == nil {
			continue
		}
		for _, op := range item.Operations.All() {
			if op == nil || op.Responses == nil {
				continue
			}
			normalizeResponses(op.Responses)
		}
	}
}

func normalizeResponses(responses *orderedmap.Map[string, *document.ResponseOrRef]) {
	statuses := make([]string, 0, responses.Len())
	for status := range responses.All() {
		statuses = append(statuses, status)
	}
	for _, status := range statuses {
		r, _ := responses.Get(status)
		alias := canonicalStatusAlias(status)
		if alias != status {
			responses.Delete(status)
			responses.Set(alias, r)
		}
		if r != nil && !r.IsReference() && r.Response != nil && strings.TrimSpace(r.Response.Description) == "" {
			r.Response.Description = "No description provided"
		}
	}
}

// canonicalStatusAlias upper-cases a status-class wildcard like "4xx" to
// the documented alias form "4XX"; any other status code is left as-is.
func canonicalStatusAlias(status string) string {
	if len(status) != 3 {
		return status
	}
	if _, err := strconv.Atoi(status[:1]); err != nil {
		return status
	}
	if strings.ToLower(status[1:]) != "xx" {
		return status
	}
	return status[:1] + "XX"
}
