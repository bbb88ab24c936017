package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fence = "```"

// Compiled once; only the top-level kind is checked here. Field contents
// are the engines' concern.
var (
	arrayShape  = mustCompileShape("array")
	objectShape = mustCompileShape("object")
)

func mustCompileShape(kind string) *jsonschema.Schema {
	url := fmt.Sprintf("shape://%s.json", kind)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, map[string]any{"type": kind}); err != nil {
		panic(fmt.Sprintf("add %s shape: %v", kind, err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile %s shape: %v", kind, err))
	}
	return s
}

// StripFences removes one optional leading fence (bare or language-tagged)
// and one optional trailing fence, then trims whitespace.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, fence); ok {
		s = strings.TrimLeftFunc(rest, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		})
		s = strings.TrimSpace(s)
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// DecodeArray decodes model output that must be a JSON array.
func DecodeArray(raw string) ([]any, error) {
	v, err := decodeShape(raw, "array", arrayShape)
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}

// DecodeObject decodes model output that must be a JSON object.
func DecodeObject(raw string) (map[string]any, error) {
	v, err := decodeShape(raw, "object", objectShape)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func decodeShape(raw, kind string, shape *jsonschema.Schema) (any, error) {
	body := StripFences(raw)

	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, &ParseError{Expected: kind, Content: raw, Err: err}
	}
	if err := shape.Validate(v); err != nil {
		return nil, &ParseError{Expected: kind, Content: raw, Err: err}
	}
	return v, nil
}
