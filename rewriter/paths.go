package rewriter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/pointer"
	"github.com/oasnormalize/rewriter/rewritelog"
)

var pathParamPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// RenameConflictingPaths applies two general, deterministic rules to every
// path: each repeat of a `{name}` segment in one template is renumbered
// (`{id}`, `{id2}`, ...), and any `{param}` segment that has no matching
// path-level parameter entry gets one synthesized. There is no table of
// specific paths; pairs such as `/item` and `/item/{id}` are left as they
// are.
func RenameConflictingPaths(doc *document.Document, log rewritelog.Logger) {
	if log == nil {
		log = rewritelog.NopLogger{}
	}
	if doc.Paths == nil {
		return
	}

	for _, path := range collectPaths(doc) {
		item, _ := doc.Paths.Get(path)
		newPath := dedupePathParamNames(path)
		if newPath != path {
			doc.Paths.Delete(path)
			doc.Paths.Set(newPath, item)
			log.Warn("renamed path with duplicated parameter names", "from", path, "to", newPath)
			path = newPath
		}
		ensurePathParameters(item, path)
	}
}

func collectPaths(doc *document.Document) []string {
	paths := make([]string, 0, doc.Paths.Len())
	for path := range doc.Paths.All() {
		paths = append(paths, path)
	}
	return paths
}

// dedupePathParamNames renames every repeat occurrence of a `{name}`
// segment within path to `{name2}`, `{name3}`, ... Returns path unchanged
// if there are no repeats.
func dedupePathParamNames(path string) string {
	seen := make(map[string]int)
	return pathParamPattern.ReplaceAllStringFunc(path, func(segment string) string {
		name := segment[1 : len(segment)-1]
		seen[name]++
		if seen[name] == 1 {
			return segment
		}
		return "{" + fmt.Sprintf("%s%d", name, seen[name]) + "}"
	})
}

// ensurePathParameters synthesizes a path parameter entry (type=string,
// maxLength=32, in=path, required=true) for any `{name}` segment in path
// that has no matching parameter yet.
func ensurePathParameters(item *document.PathItem, path string) {
	if item == nil {
		return
	}
	for _, match := range pathParamPattern.FindAllStringSubmatch(path, -1) {
		name := match[1]
		if hasPathParameter(item, name) {
			continue
		}
		item.Parameters = append(item.Parameters, &document.ParameterOrRef{
			Parameter: &document.Parameter{
				Name:     name,
				In:       document.ParameterInPath,
				Required: true,
				Schema: document.Inline(&document.Schema{
					Type:      "string",
					MaxLength: pointer.From(32),
				}),
			},
		})
	}
}

func hasPathParameter(item *document.PathItem, name string) bool {
	for _, p := range item.Parameters {
		if p != nil && !p.IsReference() && p.Parameter != nil &&
			p.Parameter.In == document.ParameterInPath && strings.EqualFold(p.Parameter.Name, name) {
			return true
		}
	}
	return false
}
