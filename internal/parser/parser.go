// Package parser decodes free-text model replies into typed fields. Every
// decoder is total: malformed input degrades to documented defaults instead
// of returning an error, so one badly formatted reply never fails a request.
package parser

import "strings"

// Default values substituted when a reply omits or mangles a field. Exported
// so callers can distinguish a parsed value from a fallback.
const (
	// DefaultJustification stands in when a reply carries no justification.
	DefaultJustification = "Based on document analysis"
	// DefaultFeedback stands in when an evaluation reply carries no feedback.
	DefaultFeedback = "Unable to evaluate"
	// DefaultReference stands in when an evaluation reply cites nothing.
	DefaultReference = "No specific reference"
	// PlaceholderAnswer fills the expected answer of a heuristically
	// recovered challenge question.
	PlaceholderAnswer = "Please refer to the document for the answer"
	// PlaceholderExplanation fills the explanation of a heuristically
	// recovered challenge question.
	PlaceholderExplanation = "Generated from document analysis"
)

// extractJSONBlock strips markdown code fences and returns the outermost
// brace-delimited span, or "" when the text contains none.
func extractJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
