// codec.go hand-writes the wire-format marshal/unmarshal rules the generic
// struct tags on types.go/schema.go can't express: the Reference/Inline sum
// types (a bare "$ref" key vs. the object itself), the additionalProperties
// bool-or-schema union, the security-requirement map-with-no-enclosing-
// field, and a PathItem's method verbs living as siblings of its own
// summary/description/parameters fields. A reflection-based generic
// marshaller (as the teacher builds one) would let every type go back to
// plain struct tags, but this document model is small and fixed, so each
// union gets its own direct UnmarshalYAML/MarshalJSON pair instead.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
	"gopkg.in/yaml.v3"
)

// Diagnostic is a non-fatal note surfaced while parsing or re-parsing a
// document (spec.md §4.6 Stage 0 and Stage 6 both "capture diagnostics").
type Diagnostic struct {
	Message string
}

// Parse decodes an OpenAPI document from YAML or JSON (JSON is valid YAML,
// so one decoder handles both source formats). Any decode error, including
// a mismatch on a single malformed node, fails the whole parse: Parse
// returns the error and no document, and recovers no partial graph. The
// returned diagnostics are always empty.
func Parse(src []byte) (*Document, []Diagnostic, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("document: parse: %w", err)
	}
	if doc.Paths == nil {
		doc.Paths = orderedmap.New[string, *PathItem]()
	}
	if doc.Components == nil {
		doc.Components = &Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = orderedmap.New[string, *SchemaOrRef]()
	}
	return &doc, nil, nil
}

// Serialize renders doc as JSON (spec.md §4.6 Stage 6 "serialize to JSON").
func Serialize(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// --- Schema: additionalProperties bool-or-schema union ---

type schemaAlias Schema

func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("document: expected a mapping for a schema, got %v", value.Tag)
	}

	var alias schemaAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*s = Schema(alias)

	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value != "additionalProperties" {
			continue
		}
		valNode := value.Content[i+1]
		var b bool
		if valNode.Kind == yaml.ScalarNode && valNode.Decode(&b) == nil {
			s.AdditionalPropertiesAllowed = &b
			continue
		}
		var sr SchemaOrRef
		if err := valNode.Decode(&sr); err != nil {
			return fmt.Errorf("document: additionalProperties: %w", err)
		}
		s.AdditionalProperties = &sr
	}
	return nil
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	type wire schemaAlias
	w := wire(*s)
	base, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	if s.AdditionalProperties == nil && s.AdditionalPropertiesAllowed == nil {
		return base, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	if s.AdditionalPropertiesAllowed != nil {
		m["additionalProperties"], err = json.Marshal(*s.AdditionalPropertiesAllowed)
	} else {
		m["additionalProperties"], err = json.Marshal(s.AdditionalProperties)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// --- Reference/Inline sum types ---

func hasRefKey(value *yaml.Node) (string, bool) {
	if value.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "$ref" {
			var ref string
			if value.Content[i+1].Decode(&ref) == nil {
				return ref, true
			}
		}
	}
	return "", false
}

func (s *SchemaOrRef) UnmarshalYAML(value *yaml.Node) error {
	if ref, ok := hasRefKey(value); ok {
		r := refs.Reference(ref)
		s.Ref = &r
		return nil
	}
	var schema Schema
	if err := value.Decode(&schema); err != nil {
		return err
	}
	s.Schema = &schema
	return nil
}

func (s *SchemaOrRef) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	if s.Ref != nil {
		return json.Marshal(refWire{Ref: string(*s.Ref)})
	}
	return json.Marshal(s.Schema)
}

type refWire struct {
	Ref string `json:"$ref"`
}

func (p *ParameterOrRef) UnmarshalYAML(value *yaml.Node) error {
	if ref, ok := hasRefKey(value); ok {
		r := refs.Reference(ref)
		p.Ref = &r
		return nil
	}
	var param Parameter
	if err := value.Decode(&param); err != nil {
		return err
	}
	p.Parameter = &param
	return nil
}

func (p *ParameterOrRef) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	if p.Ref != nil {
		return json.Marshal(refWire{Ref: string(*p.Ref)})
	}
	return json.Marshal(p.Parameter)
}

func (r *RequestBodyOrRef) UnmarshalYAML(value *yaml.Node) error {
	if ref, ok := hasRefKey(value); ok {
		ref := refs.Reference(ref)
		r.Ref = &ref
		return nil
	}
	var body RequestBody
	if err := value.Decode(&body); err != nil {
		return err
	}
	r.Body = &body
	return nil
}

func (r *RequestBodyOrRef) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	if r.Ref != nil {
		return json.Marshal(refWire{Ref: string(*r.Ref)})
	}
	return json.Marshal(r.Body)
}

func (r *ResponseOrRef) UnmarshalYAML(value *yaml.Node) error {
	if ref, ok := hasRefKey(value); ok {
		ref := refs.Reference(ref)
		r.Ref = &ref
		return nil
	}
	var resp Response
	if err := value.Decode(&resp); err != nil {
		return err
	}
	r.Response = &resp
	return nil
}

func (r *ResponseOrRef) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	if r.Ref != nil {
		return json.Marshal(refWire{Ref: string(*r.Ref)})
	}
	return json.Marshal(r.Response)
}

func (h *HeaderOrRef) UnmarshalYAML(value *yaml.Node) error {
	if ref, ok := hasRefKey(value); ok {
		ref := refs.Reference(ref)
		h.Ref = &ref
		return nil
	}
	var header Header
	if err := value.Decode(&header); err != nil {
		return err
	}
	h.Header = &header
	return nil
}

func (h *HeaderOrRef) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	if h.Ref != nil {
		return json.Marshal(refWire{Ref: string(*h.Ref)})
	}
	return json.Marshal(h.Header)
}

// --- SecurityRequirement: wire format is the scheme->scopes map itself ---

func (s *SecurityRequirement) UnmarshalYAML(value *yaml.Node) error {
	m := orderedmap.New[string, []string]()
	if err := value.Decode(m); err != nil {
		return err
	}
	s.Schemes = m
	return nil
}

func (s SecurityRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Schemes)
}

// --- PathItem: method verbs are siblings of summary/description/parameters ---

var methodKeys = map[string]Method{
	"get": MethodGet, "put": MethodPut, "post": MethodPost, "delete": MethodDelete,
	"options": MethodOptions, "head": MethodHead, "patch": MethodPatch, "trace": MethodTrace,
}

func (p *PathItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("document: expected a mapping for a path item, got %v", value.Tag)
	}
	p.Operations = orderedmap.New[Method, *Operation]()

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		val := value.Content[i+1]
		switch key {
		case "summary":
			if err := val.Decode(&p.Summary); err != nil {
				return err
			}
		case "description":
			if err := val.Decode(&p.Description); err != nil {
				return err
			}
		case "parameters":
			if err := val.Decode(&p.Parameters); err != nil {
				return err
			}
		default:
			if method, ok := methodKeys[key]; ok {
				var op Operation
				if err := val.Decode(&op); err != nil {
					return err
				}
				p.Operations.Set(method, &op)
			}
		}
	}
	return nil
}

func (p *PathItem) MarshalJSON() ([]byte, error) {
	m := map[string]json.RawMessage{}
	var err error
	if p.Summary != "" {
		if m["summary"], err = json.Marshal(p.Summary); err != nil {
			return nil, err
		}
	}
	if p.Description != "" {
		if m["description"], err = json.Marshal(p.Description); err != nil {
			return nil, err
		}
	}
	if len(p.Parameters) > 0 {
		if m["parameters"], err = json.Marshal(p.Parameters); err != nil {
			return nil, err
		}
	}
	if p.Operations != nil {
		for method, op := range p.Operations.All() {
			if m[string(method)], err = json.Marshal(op); err != nil {
				return nil, err
			}
		}
	}
	return json.Marshal(m)
}
