package parser

import (
	"strconv"
	"strings"
)

const (
	scoreMarker     = "Score:"
	feedbackMarker  = "Feedback:"
	referenceMarker = "Document Reference:"
)

// Evaluation is the decoded form of an answer-evaluation reply.
type Evaluation struct {
	Score     int
	Feedback  string
	Reference string
}

// ParseEvaluation decodes a reply expected to follow the "Score: ...
// Feedback: ... Document Reference: ..." layout. The returned bool reports
// whether the score was taken from the reply: a missing, non-numeric, or
// out-of-range score yields 0 and false, never an error, so the caller can
// log the anomaly while still returning a renderable result.
func ParseEvaluation(raw string) (Evaluation, bool) {
	text := strings.TrimSpace(raw)
	ev := Evaluation{Feedback: DefaultFeedback, Reference: DefaultReference}

	scoreValid := false
	if i := strings.Index(text, scoreMarker); i >= 0 {
		rest := strings.TrimSpace(text[i+len(scoreMarker):])
		if fields := strings.Fields(rest); len(fields) > 0 {
			if digits := leadingDigits(fields[0]); digits != "" {
				if n, err := strconv.Atoi(digits); err == nil && n >= 0 && n <= 100 {
					ev.Score = n
					scoreValid = true
				}
			}
		}
	}

	if i := strings.Index(text, feedbackMarker); i >= 0 {
		rest := text[i+len(feedbackMarker):]
		if j := strings.Index(rest, referenceMarker); j >= 0 {
			rest = rest[:j]
		}
		if captured := strings.TrimSpace(rest); captured != "" {
			ev.Feedback = captured
		}
	}

	if i := strings.Index(text, referenceMarker); i >= 0 {
		if captured := strings.TrimSpace(text[i+len(referenceMarker):]); captured != "" {
			ev.Reference = captured
		}
	}

	return ev, scoreValid
}

// leadingDigits returns the digit run prefixing s. Replies like
// "Score: 85/100" or "Score: 90." still yield their numeric score.
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
