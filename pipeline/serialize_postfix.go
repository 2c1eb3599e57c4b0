package pipeline

import "regexp"

// booleanLiteralPattern matches a whole-word True/False sitting in a JSON
// value position (after ':', ',', '[', or at the start of an array
// element) — the one place spec.md §4.6 Stage 6 has the pipeline touch
// already-serialized text instead of the document graph, because the
// upstream source sometimes carries Python-style capitalized booleans
// inside a string-typed default/example that downstream re-serialization
// must not silently coerce into an actual JSON boolean — only a bare,
// unquoted True/False literal is rewritten.
var booleanLiteralPattern = regexp.MustCompile(`([:,\[]\s*)(True|False)(\s*[,\]}])`)

// fixJSONBooleanLiterals lowercases a bare True/False JSON value to the
// valid true/false literal.
func fixJSONBooleanLiterals(src []byte) []byte {
	return booleanLiteralPattern.ReplaceAllFunc(src, func(m []byte) []byte {
		sub := booleanLiteralPattern.FindSubmatch(m)
		lowered := []byte("false")
		if string(sub[2]) == "True" {
			lowered = []byte("true")
		}
		out := make([]byte, 0, len(m))
		out = append(out, sub[1]...)
		out = append(out, lowered...)
		out = append(out, sub[3]...)
		return out
	})
}
