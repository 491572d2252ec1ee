// Package assist orchestrates document comprehension operations against the
// Gemini API: summarization, grounded question answering, challenge question
// generation, and answer evaluation. Operations never return a Go error;
// failures degrade to StatusError results with placeholder content so callers
// always have something to render.
package assist

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/evidence"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/parser"
	"github.com/docsage/docsage/pkg/gemini"
)

// Defaults applied when a caller passes a non-positive bound.
const (
	DefaultSummaryWords   = 150
	DefaultChallengeCount = 3
)

// User-facing placeholder content for failed generations.
const (
	errSummaryText   = "Error generating summary"
	errAnswerText    = "Error processing question"
	errTechnicalText = "Technical error occurred"
	errEvaluateText  = "Error evaluating answer"
)

// Service defines the document comprehension operations.
type Service interface {
	Summarize(ctx context.Context, documentText string, maxWords int) model.SummaryResult
	Answer(ctx context.Context, question, documentText string, history []model.ConversationTurn) model.AnswerResult
	GenerateChallenge(ctx context.Context, documentText string, count int) model.ChallengeResult
	Evaluate(ctx context.Context, question, userAnswer, correctAnswer, documentText string) model.EvaluationResult
}

// Options is the generation configuration fixed at construction time.
type Options struct {
	Model                string
	Temperature          float32
	ChallengeTemperature float32
	MaxOutputTokens      int32
	SummaryMaxTokens     int32
	EvaluateMaxTokens    int32
	SnippetMaxLength     int
}

// DefaultOptions returns the standard generation configuration.
func DefaultOptions() Options {
	return Options{
		Model:                gemini.DefaultModel,
		Temperature:          0.3,
		ChallengeTemperature: 0.5,
		MaxOutputTokens:      2048,
		SummaryMaxTokens:     300,
		EvaluateMaxTokens:    1000,
		SnippetMaxLength:     evidence.DefaultMaxLength,
	}
}

// Assistant implements Service against a gemini.Client.
type Assistant struct {
	llm  gemini.Client
	opts Options
}

var _ Service = (*Assistant)(nil)

// New creates an Assistant. Zero-valued Options fields fall back to the
// defaults, so partial overrides are safe.
func New(llm gemini.Client, opts Options) *Assistant {
	def := DefaultOptions()
	if opts.Model == "" {
		opts.Model = def.Model
	}
	if opts.Temperature <= 0 {
		opts.Temperature = def.Temperature
	}
	if opts.ChallengeTemperature <= 0 {
		opts.ChallengeTemperature = def.ChallengeTemperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = def.MaxOutputTokens
	}
	if opts.SummaryMaxTokens <= 0 {
		opts.SummaryMaxTokens = def.SummaryMaxTokens
	}
	if opts.EvaluateMaxTokens <= 0 {
		opts.EvaluateMaxTokens = def.EvaluateMaxTokens
	}
	if opts.SnippetMaxLength <= 0 {
		opts.SnippetMaxLength = def.SnippetMaxLength
	}
	return &Assistant{llm: llm, opts: opts}
}

// Summarize produces a summary of at most maxWords words.
func (a *Assistant) Summarize(ctx context.Context, documentText string, maxWords int) model.SummaryResult {
	if maxWords <= 0 {
		maxWords = DefaultSummaryWords
	}

	prompt := fmt.Sprintf(summaryPrompt, maxWords, truncate(documentText, summaryInputLimit), maxWords)
	resp, err := a.generate(ctx, prompt, a.opts.Temperature, a.opts.SummaryMaxTokens)
	if err != nil {
		zap.L().Error("assist: generate summary", zap.Error(err))
		return model.SummaryResult{
			Summary: errSummaryText,
			Status:  model.StatusError,
			Error:   "failed to generate summary",
		}
	}

	summary := strings.TrimSpace(resp.Text)
	return model.SummaryResult{
		Summary:   summary,
		WordCount: len(strings.Fields(summary)),
		Status:    model.StatusSuccess,
	}
}

// Answer answers a question grounded in the document, carrying the recent
// conversation into the prompt and attaching a supporting snippet selected
// from the document text.
func (a *Assistant) Answer(ctx context.Context, question, documentText string, history []model.ConversationTurn) model.AnswerResult {
	prompt := fmt.Sprintf(answerPrompt,
		truncate(documentText, answerInputLimit),
		conversationContext(history),
		question,
	)
	resp, err := a.generate(ctx, prompt, a.opts.Temperature, a.opts.MaxOutputTokens)
	if err != nil {
		zap.L().Error("assist: answer question", zap.Error(err))
		return model.AnswerResult{
			Answer:        errAnswerText,
			Justification: errTechnicalText,
			Snippet:       "",
			Status:        model.StatusError,
			Error:         "failed to process question",
		}
	}

	parsed := parser.ParseAnswer(resp.Text)
	snippet := evidence.Select(documentText, parsed.Answer, question, a.opts.SnippetMaxLength)

	return model.AnswerResult{
		Answer:        parsed.Answer,
		Justification: parsed.Justification,
		Snippet:       snippet,
		Status:        model.StatusSuccess,
	}
}

// GenerateChallenge produces comprehension questions for the document. The
// reply may yield fewer questions than requested; that is still a success.
func (a *Assistant) GenerateChallenge(ctx context.Context, documentText string, count int) model.ChallengeResult {
	if count <= 0 {
		count = DefaultChallengeCount
	}

	prompt := fmt.Sprintf(challengePrompt, count, truncate(documentText, challengeInputLimit), count)
	resp, err := a.generate(ctx, prompt, a.opts.ChallengeTemperature, a.opts.MaxOutputTokens)
	if err != nil {
		zap.L().Error("assist: generate challenge", zap.Error(err))
		return model.ChallengeResult{
			Questions: []model.ChallengeQuestion{},
			Status:    model.StatusError,
			Error:     "failed to generate questions",
		}
	}

	questions := parser.ParseChallenge(resp.Text, count)
	if len(questions) == 0 {
		zap.L().Warn("assist: challenge reply yielded no questions",
			zap.Int("requested", count),
		)
		questions = []model.ChallengeQuestion{}
	}

	return model.ChallengeResult{Questions: questions, Status: model.StatusSuccess}
}

// Evaluate scores a user's answer against the expected answer. A reply with
// a missing or out-of-range score still succeeds with score 0.
func (a *Assistant) Evaluate(ctx context.Context, question, userAnswer, correctAnswer, documentText string) model.EvaluationResult {
	prompt := fmt.Sprintf(evaluatePrompt,
		truncate(documentText, evaluateInputLimit),
		question,
		correctAnswer,
		userAnswer,
	)
	resp, err := a.generate(ctx, prompt, a.opts.Temperature, a.opts.EvaluateMaxTokens)
	if err != nil {
		zap.L().Error("assist: evaluate answer", zap.Error(err))
		return model.EvaluationResult{
			Score:     0,
			Feedback:  errEvaluateText,
			Reference: errTechnicalText,
			Status:    model.StatusError,
			Error:     "failed to evaluate answer",
		}
	}

	ev, scoreValid := parser.ParseEvaluation(resp.Text)
	if !scoreValid {
		zap.L().Warn("assist: evaluation score missing or out of range",
			zap.String("question", question),
		)
	}

	return model.EvaluationResult{
		Score:     ev.Score,
		Feedback:  ev.Feedback,
		Reference: ev.Reference,
		Status:    model.StatusSuccess,
	}
}

func (a *Assistant) generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (*gemini.TextResponse, error) {
	return a.llm.GenerateText(ctx, gemini.TextRequest{
		Model:           a.opts.Model,
		Prompt:          prompt,
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	})
}
