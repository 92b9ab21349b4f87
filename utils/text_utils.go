package utils

import "strings"

// ExtractJSONFromText pulls the JSON object out of a model response. Models
// asked for JSON-only output still occasionally wrap it in prose or a
// ```json fence, so take the outermost {...} span first, then try a fenced
// code block, and fall back to the raw text (the caller's Unmarshal decides).
func ExtractJSONFromText(text string) string {
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")

	if startIdx >= 0 && endIdx > startIdx {
		return text[startIdx : endIdx+1]
	}

	startMarker := "```json"
	endMarker := "```"
	startIdx = strings.Index(text, startMarker)
	if startIdx >= 0 {
		startIdx += len(startMarker)
		endIdx = strings.Index(text[startIdx:], endMarker)
		if endIdx > 0 {
			return strings.TrimSpace(text[startIdx : startIdx+endIdx])
		}
	}

	return text
}

// Preview truncates s for logging.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
