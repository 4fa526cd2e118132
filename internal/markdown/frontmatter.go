package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits a leading metadata block from the markdown body.
// Sources without a block yield an empty map and the full text as body. When
// the block is malformed the same fallback is returned together with the
// parse error so callers can record it.
func ParseFrontMatter(source []byte) (map[string]any, string, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return map[string]any{}, string(source), fmt.Errorf("parse frontmatter: %w", err)
	}

	normalized, _ := Normalize(meta).(map[string]any)
	if normalized == nil {
		normalized = map[string]any{}
	}
	return normalized, string(body), nil
}

// Normalize rewrites YAML decoded values so they can be encoded as JSON:
// map[any]any becomes map[string]any, recursively through maps and slices.
func Normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	default:
		return value
	}
}
