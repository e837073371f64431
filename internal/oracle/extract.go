package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseReply locates and decodes the JSON object inside a raw oracle
// reply. A fenced code block is preferred; failing that, the first
// balanced top-level brace span is tried. Replies are JSON-only: when
// neither path yields a well-formed object the reply is a terminal parse
// error for the document.
func ParseReply(reply string) (map[string]any, error) {
	for _, candidate := range []string{extractFenced(reply), extractBraceSpan(reply)} {
		if candidate == "" {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(candidate), &fields); err == nil {
			return fields, nil
		}
	}
	return nil, fmt.Errorf("no well-formed JSON object in oracle reply")
}

// extractFenced returns the body of the first ``` fenced code block,
// skipping an optional language tag on the opening fence.
func extractFenced(s string) string {
	start := strings.Index(s, "```")
	if start == -1 {
		return ""
	}
	rest := s[start+3:]

	// The opening fence may carry a language tag ("```json").
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// extractBraceSpan returns the first balanced top-level {...} span,
// ignoring braces inside JSON string literals.
func extractBraceSpan(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
