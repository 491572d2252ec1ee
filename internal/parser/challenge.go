package parser

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/docsage/docsage/internal/model"
)

// minQuestionLineLength excludes list bullets and fragments from heuristic
// question recovery; a real question line is longer than this after trimming,
// measured in characters.
const minQuestionLineLength = 10

// challengeDecoder is one decoding strategy. ok reports whether the strategy
// recognized the reply; a recognized reply ends the chain even when it
// produced fewer questions than requested.
type challengeDecoder func(raw string, count int) ([]model.ChallengeQuestion, bool)

// challengeDecoders is the ordered fallback chain. The JSON decoder runs
// first; the line scanner is terminal and always succeeds.
var challengeDecoders = []challengeDecoder{
	decodeQuestionBlock,
	scanQuestionLines,
}

// ParseChallenge decodes a challenge-generation reply into questions. count
// caps how many the heuristic scanner recovers; the structured decoder
// returns whatever the reply contains.
func ParseChallenge(raw string, count int) []model.ChallengeQuestion {
	for _, decode := range challengeDecoders {
		if questions, ok := decode(raw, count); ok {
			return questions
		}
	}
	return nil
}

// decodeQuestionBlock handles replies that followed the requested JSON
// layout, with or without markdown fences around the object.
func decodeQuestionBlock(raw string, _ int) ([]model.ChallengeQuestion, bool) {
	cleaned := extractJSONBlock(raw)
	if cleaned == "" {
		return nil, false
	}

	var payload struct {
		Questions []model.ChallengeQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, false
	}
	return payload.Questions, true
}

// scanQuestionLines recovers questions from a free-form reply by collecting
// lines that look like questions. Recovered questions get placeholder answer
// and explanation fields and medium difficulty.
func scanQuestionLines(raw string, count int) ([]model.ChallengeQuestion, bool) {
	var questions []model.ChallengeQuestion
	for _, line := range strings.Split(raw, "\n") {
		if len(questions) >= count {
			break
		}
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minQuestionLineLength || !strings.Contains(line, "?") {
			continue
		}
		questions = append(questions, model.ChallengeQuestion{
			Question:      line,
			CorrectAnswer: PlaceholderAnswer,
			Explanation:   PlaceholderExplanation,
			Difficulty:    model.DifficultyMedium,
		})
	}
	return questions, true
}
