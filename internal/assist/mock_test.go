package assist

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docsage/docsage/pkg/gemini"
)

// --- Gemini Mock ---

type mockGeminiClient struct {
	mock.Mock
}

var _ gemini.Client = (*mockGeminiClient)(nil)

func (m *mockGeminiClient) GenerateText(ctx context.Context, req gemini.TextRequest) (*gemini.TextResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gemini.TextResponse), args.Error(1)
}

func (m *mockGeminiClient) Close() error {
	args := m.Called()
	return args.Error(0)
}
