// Package genclient - extract.go recovers JSON payloads from generation
// responses and normalizes bullet text.
package genclient

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var leadingDash = regexp.MustCompile(`^-\s*`)

// CleanBullet normalizes one bullet string from the service: surrounding
// whitespace is trimmed, one leading and one trailing quote character is
// stripped, and a leading "- " marker is replaced with "• ".
func CleanBullet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	if leadingDash.MatchString(s) {
		s = "• " + leadingDash.ReplaceAllString(s, "")
	}
	return s
}

// CleanBullets applies CleanBullet to every element.
func CleanBullets(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = CleanBullet(s)
	}
	return out
}

// ExtractJSONObject locates the JSON object carried by a generation
// response. The service may return a pure JSON body, a body wrapped in
// markdown code fences, an object wrapped in doubled braces, or an object
// embedded in surrounding prose; each form is tried in turn, ending with a
// bracket-matching scan for the outermost well-formed object. If no valid
// object is found the extraction fails explicitly.
func ExtractJSONObject(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if isJSONObject(trimmed) {
		return trimmed, nil
	}

	if cleaned := cleanJSONBlock(trimmed); isJSONObject(cleaned) {
		return cleaned, nil
	}

	// Some responses double every brace ({{"bullets": ...}}).
	if strings.Contains(trimmed, "{{") && strings.Contains(trimmed, "}}") {
		start := strings.Index(trimmed, "{{")
		end := strings.LastIndex(trimmed, "}}")
		if start < end {
			inner := strings.TrimSpace(trimmed[start+1 : end+1])
			if isJSONObject(inner) {
				return inner, nil
			}
		}
	}

	if obj, ok := scanJSONObject(trimmed); ok {
		return obj, nil
	}
	return "", fmt.Errorf("no valid JSON object found in response")
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// scanJSONObject walks the text tracking brace depth (string- and
// escape-aware) and returns the first balanced object that parses.
func scanJSONObject(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if escaped {
				escaped = false
				continue
			}
			switch {
			case inString && c == '\\':
				escaped = true
			case c == '"':
				inString = !inString
			case !inString && c == '{':
				depth++
			case !inString && c == '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					i = len(text) // unparseable span; resume after this open brace
				}
			}
		}
	}
	return "", false
}

// cleanJSONBlock removes markdown code fence wrappers. Generation backends
// often wrap JSON in ```json ... ``` blocks even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
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
