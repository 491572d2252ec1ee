package model

// Difficulty labels for generated challenge questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ChallengeQuestion is one comprehension question generated from a document,
// carrying the expected answer for later evaluation.
type ChallengeQuestion struct {
	Question      string `json:"question" yaml:"question"`
	CorrectAnswer string `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string `json:"explanation" yaml:"explanation"`
	Difficulty    string `json:"difficulty" yaml:"difficulty"`
}

// ChallengeSet groups the questions generated for a single document, in the
// shape used for YAML export and import.
type ChallengeSet struct {
	DocumentID string              `json:"document_id" yaml:"document_id"`
	Questions  []ChallengeQuestion `json:"questions" yaml:"questions"`
}
