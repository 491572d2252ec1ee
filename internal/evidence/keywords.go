// Package evidence selects supporting snippets from document text using
// deterministic keyword-overlap scoring. No model calls are involved, so
// snippet selection stays cheap and reproducible.
package evidence

import "strings"

// stopWords are common English function words excluded from keyword sets.
// Only query text (question and answer) is filtered; document sentences keep
// all their words since they are matched against the already-filtered set.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// Keywords splits text on whitespace, lowercases each token, and drops stop
// words. Tokens are kept verbatim otherwise; punctuation attached to a word
// makes it a distinct keyword.
func Keywords(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
