package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be recovered from a response.
var ErrNoJSON = errors.New("unable to extract JSON from model response")

// CleanJSONBlock strips markdown fences, leading prose and trailing prose from
// a model response, returning the first complete JSON object or array.
func CleanJSONBlock(text string) string {
	text = stripFences(strings.TrimSpace(text))
	if text == "" || json.Valid([]byte(text)) {
		return text
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	var block string
	if text[start] == '{' {
		block = extractJSONObject(text[start:])
	} else {
		block = extractJSONArray(text[start:])
	}
	if block == "" {
		return text
	}
	return block
}

// ParseJSONObject recovers a JSON object from a model response: a direct
// parse first, then fence stripping, then the first balanced {...} block.
// Numbers are kept as json.Number.
func ParseJSONObject(text string) (map[string]any, error) {
	candidates := []string{strings.TrimSpace(text), CleanJSONBlock(text)}
	if i := strings.Index(text, "{"); i >= 0 {
		candidates = append(candidates, extractJSONObject(text[i:]))
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if obj, ok := decodeObject(c); ok {
			return obj, nil
		}
	}
	return nil, ErrNoJSON
}

func decodeObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return obj, true
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
	return text
}

// extractJSONObject returns the balanced object at the start of s, or "".
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced array at the start of s, or "".
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
