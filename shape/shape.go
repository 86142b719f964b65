// Package shape converts the key casing of decoded JSON values between the
// persisted snake_case form and the camelCase wire form.
package shape

import (
	"encoding/json"
	"strings"
	"unicode"
)

// SnakeToCamel converts a single snake_case key to camelCase.
// Only an underscore followed by a lowercase letter starts a new word.
func SnakeToCamel(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '_' && i+1 < len(key) && key[i+1] >= 'a' && key[i+1] <= 'z' {
			b.WriteByte(key[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake converts a single camelCase key to snake_case.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel recursively rewrites the keys of maps (and maps inside slices)
// to camelCase. Scalars pass through unchanged.
func ToCamel(v any) any {
	return convert(v, SnakeToCamel)
}

// ToSnake recursively rewrites the keys of maps (and maps inside slices)
// to snake_case. Scalars pass through unchanged.
func ToSnake(v any) any {
	return convert(v, CamelToSnake)
}

func convert(v any, key func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[key(k)] = convert(val, key)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = convert(val, key)
		}
		return out
	default:
		return v
	}
}

// Wire serializes v through its snake_case JSON tags and returns the
// camelCase form used on the wire.
func Wire(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return ToCamel(decoded), nil
}
