// Package document is the typed in-memory graph the rewriter operates on
// (spec.md §3). It is created once by the parser, owned exclusively by the
// pipeline for the run, and consumed by the serializer — no pass retains a
// reference to it past the run.
package document

import (
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
)

// Method is an HTTP method as used in a PathItem's operation map.
type Method string

const (
	MethodGet     Method = "get"
	MethodPut     Method = "put"
	MethodPost    Method = "post"
	MethodDelete  Method = "delete"
	MethodOptions Method = "options"
	MethodHead    Method = "head"
	MethodPatch   Method = "patch"
	MethodTrace   Method = "trace"
)

// AllMethods lists every method in a fixed order. Operation maps iterate in
// their own insertion order and do not consult this list.
var AllMethods = []Method{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// Document is the root of the graph (spec.md §3).
type Document struct {
	OpenAPI    string                           `yaml:"openapi" json:"openapi"`
	Info       Info                             `yaml:"info" json:"info"`
	Paths      *orderedmap.Map[string, *PathItem]   `yaml:"paths" json:"paths"`
	Components *Components                      `yaml:"components,omitempty" json:"components,omitempty"`
}

// Info carries the document-level metadata relevant to the description
// sanitation pass (spec.md §4.4 "Fix YAML-unsafe descriptions").
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Components is the named collection of reusable objects a Reference may
// target.
type Components struct {
	Schemas         *orderedmap.Map[string, *SchemaOrRef]   `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Parameters      *orderedmap.Map[string, *Parameter]     `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies   *orderedmap.Map[string, *RequestBody]   `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Responses       *orderedmap.Map[string, *Response]      `yaml:"responses,omitempty" json:"responses,omitempty"`
	Headers         *orderedmap.Map[string, *Header]        `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes *orderedmap.Map[string, *SecurityScheme] `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	Examples        *orderedmap.Map[string, *Example]       `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// PathItem groups the operations available at one path template. Unmarshals
// and marshals the method verbs as direct sibling keys rather than a nested
// field — see codec.go.
type PathItem struct {
	Summary     string
	Description string
	Parameters  []*ParameterOrRef
	Operations  *orderedmap.Map[Method, *Operation]
}

// Operation describes a single method on a path.
type Operation struct {
	OperationID string                                `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string                                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                                `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters  []*ParameterOrRef                     `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBodyOrRef                     `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   *orderedmap.Map[string, *ResponseOrRef] `yaml:"responses" json:"responses"`
	Security    []SecurityRequirement                 `yaml:"security,omitempty" json:"security,omitempty"`
}

// SecurityRequirement maps a security scheme name to its required scopes.
// Wire format is the map itself, with no enclosing field — see codec.go.
type SecurityRequirement struct {
	Schemes *orderedmap.Map[string, []string]
}

// All iterates scheme name -> scopes. Nil-safe.
func (s *SecurityRequirement) All() func(yield func(string, []string) bool) {
	if s == nil || s.Schemes == nil {
		return func(func(string, []string) bool) {}
	}
	return s.Schemes.All()
}

// ParameterIn is where a parameter is carried.
type ParameterIn string

const (
	ParameterInPath   ParameterIn = "path"
	ParameterInQuery  ParameterIn = "query"
	ParameterInHeader ParameterIn = "header"
	ParameterInCookie ParameterIn = "cookie"
)

// Parameter describes a single operation or path-level parameter.
type Parameter struct {
	Name        string                             `yaml:"name" json:"name"`
	In          ParameterIn                        `yaml:"in" json:"in"`
	Description string                             `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                               `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *SchemaOrRef                       `yaml:"schema,omitempty" json:"schema,omitempty"`
	Content     *orderedmap.Map[string, *MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
}

// ParameterOrRef is a Parameter or a Reference to a components.parameters
// entry, following the Reference[T] shape of the teacher library
// (IsReference/GetObject) without its resolution cache or external-ref
// machinery, both out of scope here.
type ParameterOrRef struct {
	Ref       *refs.Reference
	Parameter *Parameter
}

func (p *ParameterOrRef) IsReference() bool { return p != nil && p.Ref != nil }

// RequestBody is the body accepted by an operation.
type RequestBody struct {
	Description string                             `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                               `yaml:"required,omitempty" json:"required,omitempty"`
	Content     *orderedmap.Map[string, *MediaType] `yaml:"content" json:"content"`
}

// RequestBodyOrRef is a RequestBody or a Reference to a
// components.requestBodies entry.
type RequestBodyOrRef struct {
	Ref  *refs.Reference
	Body *RequestBody
}

func (r *RequestBodyOrRef) IsReference() bool { return r != nil && r.Ref != nil }

// Response describes one possible response of an operation.
type Response struct {
	Description string                               `yaml:"description" json:"description"`
	Content     *orderedmap.Map[string, *MediaType]   `yaml:"content,omitempty" json:"content,omitempty"`
	Headers     *orderedmap.Map[string, *HeaderOrRef] `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// ResponseOrRef is a Response or a Reference to a components.responses
// entry.
type ResponseOrRef struct {
	Ref      *refs.Reference
	Response *Response
}

func (r *ResponseOrRef) IsReference() bool { return r != nil && r.Ref != nil }

// Header is a response or encoding header.
type Header struct {
	Description string                             `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                               `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *SchemaOrRef                       `yaml:"schema,omitempty" json:"schema,omitempty"`
	Content     *orderedmap.Map[string, *MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
}

// HeaderOrRef is a Header or a Reference to a components.headers entry.
type HeaderOrRef struct {
	Ref    *refs.Reference
	Header *Header
}

func (h *HeaderOrRef) IsReference() bool { return h != nil && h.Ref != nil }

// MediaType is the content for a single media type key ("application/json",
// ...).
type MediaType struct {
	Schema   *SchemaOrRef                     `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example  any                              `yaml:"example,omitempty" json:"example,omitempty"`
	Examples *orderedmap.Map[string, *Example] `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Example is a components.examples entry or an inline media-type example.
type Example struct {
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Value       any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// SecurityScheme describes how an operation or the document authenticates.
type SecurityScheme struct {
	Type         string `yaml:"type" json:"type"`
	Scheme       string `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat string `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	Name         string `yaml:"name,omitempty" json:"name,omitempty"`
	In           string `yaml:"in,omitempty" json:"in,omitempty"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
}
