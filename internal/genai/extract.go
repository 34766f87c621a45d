package genai

import "fmt"

// ExtractJSON returns the first balanced {...} span in text. Generation
// output routinely wraps the JSON document in prose or markdown fences, so
// the scanner tracks string literals and escapes rather than trusting the
// surrounding text.
func ExtractJSON(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	if start == -1 {
		return "", fmt.Errorf("no JSON object found in generation output")
	}
	return "", fmt.Errorf("unbalanced JSON object in generation output")
}
