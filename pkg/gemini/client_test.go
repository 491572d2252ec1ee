package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	c, err := NewClient(context.Background(), "")

	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestFromSDKResponse_FlattensTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("Answer: Paris"), genai.Text(" is the capital.")},
				},
				FinishReason: genai.FinishReasonStop,
			},
		},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 120, CandidatesTokenCount: 30},
	}

	got, err := fromSDKResponse(resp)

	require.NoError(t, err)
	assert.Equal(t, "Answer: Paris is the capital.", got.Text)
	assert.Equal(t, int32(120), got.Usage.InputTokens)
	assert.Equal(t, int32(30), got.Usage.OutputTokens)
}

func TestFromSDKResponse_NoCandidates(t *testing.T) {
	_, err := fromSDKResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = fromSDKResponse(nil)
	assert.Error(t, err)
}

func TestFromSDKResponse_NilContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil, FinishReason: genai.FinishReasonSafety}},
	}

	got, err := fromSDKResponse(resp)

	require.NoError(t, err)
	assert.Equal(t, "", got.Text)
}

func TestWithRateLimit_Disable(t *testing.T) {
	c := &sdkClient{}
	WithRateLimit(2)(c)
	assert.NotNil(t, c.limiter)

	WithRateLimit(0)(c)
	assert.Nil(t, c.limiter)
}
