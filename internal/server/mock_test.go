package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docsage/docsage/internal/assist"
	"github.com/docsage/docsage/internal/model"
)

// --- Assist Mock ---

type mockAssistService struct {
	mock.Mock
}

var _ assist.Service = (*mockAssistService)(nil)

func (m *mockAssistService) Summarize(ctx context.Context, documentText string, maxWords int) model.SummaryResult {
	args := m.Called(ctx, documentText, maxWords)
	return args.Get(0).(model.SummaryResult)
}

func (m *mockAssistService) Answer(ctx context.Context, question, documentText string, history []model.ConversationTurn) model.AnswerResult {
	args := m.Called(ctx, question, documentText, history)
	return args.Get(0).(model.AnswerResult)
}

func (m *mockAssistService) GenerateChallenge(ctx context.Context, documentText string, count int) model.ChallengeResult {
	args := m.Called(ctx, documentText, count)
	return args.Get(0).(model.ChallengeResult)
}

func (m *mockAssistService) Evaluate(ctx context.Context, question, userAnswer, correctAnswer, documentText string) model.EvaluationResult {
	args := m.Called(ctx, question, userAnswer, correctAnswer, documentText)
	return args.Get(0).(model.EvaluationResult)
}
