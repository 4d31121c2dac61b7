package llm

import "strings"

// cleanMarkdownWrapper strips a surrounding ```json ... ``` fence.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		// Drop the language tag line.
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// ExtractJSONObject returns the first balanced {...} object in content,
// ignoring braces inside JSON strings. Markdown fences are stripped first.
func ExtractJSONObject(content string) (string, bool) {
	content = cleanMarkdownWrapper(content)

	start := strings.IndexByte(content, '{')
	for start >= 0 {
		if end, ok := matchBrace(content, start); ok {
			return content[start : end+1], true
		}
		next := strings.IndexByte(content[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
