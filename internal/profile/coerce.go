package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// subFieldKeys are tried in order when a scalar field holds an object.
var subFieldKeys = []string{"name", "title", "value"}

// coerceString turns any decoded JSON value into a string.
// Objects resolve through their name/title/value sub-fields before falling
// back to compact JSON, so a nested {"name": "Ada"} becomes "Ada".
func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any:
		for _, key := range subFieldKeys {
			if s := coerceString(val[key]); s != "" {
				return s
			}
		}
		if len(val) == 0 {
			return ""
		}
		return compactJSON(val)
	case []any:
		if len(val) == 0 {
			return ""
		}
		return compactJSON(val)
	default:
		return fmt.Sprint(val)
	}
}

// coerceText is coerceString for free-text fields, where models sometimes
// answer with a list of bullet strings instead of one paragraph.
func coerceText(v any) string {
	arr, ok := v.([]any)
	if !ok {
		return coerceString(v)
	}
	parts := make([]string, 0, len(arr))
	for _, el := range arr {
		if s := strings.TrimSpace(coerceString(el)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// field returns the first non-empty string among the given keys of obj.
func field(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := coerceString(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// textField is field for free-text values.
func textField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := coerceText(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// asArray returns v as a JSON array, or nil when it is anything else.
func asArray(v any) []any {
	arr, _ := v.([]any)
	return arr
}

// asObject returns v as a JSON object.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// kindOf names the JSON kind of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
