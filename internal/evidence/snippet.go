package evidence

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLength caps snippet size in characters; longer winners are
	// truncated with a trailing ellipsis.
	DefaultMaxLength = 200

	// minSentenceLength filters out fragments too short to serve as
	// meaningful evidence, measured in characters after trimming whitespace.
	minSentenceLength = 20
)

// SplitSentences breaks text into sentences on '.', '!' and '?'. Runs of
// terminators collapse instead of producing empty sentences, and document
// order is preserved.
func SplitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// Select returns the document sentence that best supports the answer to the
// question, scored by overlap between the sentence's word set and the
// combined question+answer keyword set. Ties keep the earliest sentence.
// Returns "" when no sentence shares any keyword.
func Select(documentText, answer, question string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	keywords := Keywords(question)
	for w := range Keywords(answer) {
		keywords[w] = struct{}{}
	}

	best := ""
	bestScore := 0
	for _, sentence := range SplitSentences(documentText) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) < minSentenceLength {
			continue
		}
		score := 0
		seen := make(map[string]struct{})
		for _, w := range strings.Fields(strings.ToLower(sentence)) {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := keywords[w]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = sentence
		}
	}

	if bestScore == 0 {
		return ""
	}
	// Truncate on a rune boundary so multibyte text stays valid UTF-8.
	if runes := []rune(best); len(runes) > maxLength {
		best = string(runes[:maxLength]) + "..."
	}
	return best
}
