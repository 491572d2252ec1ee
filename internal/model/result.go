package model

// Status marks whether a generation operation produced a usable result.
// Operations degrade to StatusError with placeholder content instead of
// failing outright, so callers always get a renderable payload.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SummaryResult is the outcome of summarizing a document.
type SummaryResult struct {
	Summary   string `json:"summary"`
	WordCount int    `json:"word_count"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
}

// AnswerResult is the outcome of answering a question about a document.
type AnswerResult struct {
	Answer        string `json:"answer"`
	Justification string `json:"justification"`
	Snippet       string `json:"snippet"`
	Status        Status `json:"status"`
	Error         string `json:"error,omitempty"`
}

// ChallengeResult is the outcome of generating challenge questions.
type ChallengeResult struct {
	Questions []ChallengeQuestion `json:"questions"`
	Status    Status              `json:"status"`
	Error     string              `json:"error,omitempty"`
}

// EvaluationResult is the outcome of scoring a user's answer against the
// expected answer.
type EvaluationResult struct {
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
	Reference string `json:"reference"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
}
