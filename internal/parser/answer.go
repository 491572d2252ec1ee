package parser

import "strings"

const (
	answerMarker        = "Answer:"
	justificationMarker = "Justification:"
)

// ParsedAnswer is the decoded form of a question-answering reply.
type ParsedAnswer struct {
	Answer        string
	Justification string
}

// ParseAnswer decodes a reply expected to follow the "Answer: ...
// Justification: ..." layout. The two markers are located independently:
// a missing Answer marker makes the whole reply the answer, and a missing
// or empty Justification falls back to DefaultJustification.
func ParseAnswer(raw string) ParsedAnswer {
	text := strings.TrimSpace(raw)

	answer := text
	if i := strings.Index(text, answerMarker); i >= 0 {
		rest := text[i+len(answerMarker):]
		if j := strings.Index(rest, justificationMarker); j >= 0 {
			rest = rest[:j]
		}
		answer = strings.TrimSpace(rest)
	}

	justification := DefaultJustification
	if j := strings.Index(text, justificationMarker); j >= 0 {
		if captured := strings.TrimSpace(text[j+len(justificationMarker):]); captured != "" {
			justification = captured
		}
	}

	return ParsedAnswer{Answer: answer, Justification: justification}
}
