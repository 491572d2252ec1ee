package assist

import (
	"fmt"
	"strings"

	"github.com/docsage/docsage/internal/model"
)

// historyLimit bounds how many prior turns are rendered into a follow-up
// prompt. Older turns are dropped so prompt size stays predictable.
const historyLimit = 3

// conversationContext renders the most recent turns as Q:/A: pairs in
// chronological order. An empty history renders nothing, keeping the prompt
// free of an empty header.
func conversationContext(history []model.ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	var b strings.Builder
	b.WriteString("\nPrevious conversation:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", turn.Question, turn.Answer)
	}
	return b.String()
}
