// Package gemini wraps the Google Generative AI API for text generation.
package gemini

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// DefaultModel is used when a request names no model.
const DefaultModel = "gemini-2.0-flash"

// Client defines the Gemini API operations used by this application.
type Client interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)
	Close() error
}

// TextRequest is our own request type for GenerateText.
type TextRequest struct {
	Model           string
	Prompt          string
	Temperature     *float32
	MaxOutputTokens int32
}

// TextResponse is our own response type from GenerateText.
type TextResponse struct {
	Text         string
	FinishReason string
	Usage        TokenUsage
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
}

// ClientOption configures the Gemini client.
type ClientOption func(*sdkClient)

// WithRateLimit throttles GenerateText calls to rps requests per second.
// Zero or negative rps disables throttling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *sdkClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// sdkClient implements Client using the official generative-ai-go SDK.
type sdkClient struct {
	inner   *genai.Client
	limiter *rate.Limiter
}

// NewClient creates a Gemini client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (Client, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}
	inner, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	c := &sdkClient{inner: inner}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *sdkClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *sdkClient) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "gemini: rate limit")
	}

	name := strings.TrimSpace(req.Model)
	if name == "" {
		name = DefaultModel
	}

	m := c.inner.GenerativeModel(name)
	if req.Temperature != nil {
		m.SetTemperature(*req.Temperature)
	}
	if req.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(req.MaxOutputTokens)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, eris.Wrapf(err, "gemini: generate content with %s", name)
	}

	return fromSDKResponse(resp)
}

func (c *sdkClient) Close() error {
	return c.inner.Close()
}

// fromSDKResponse flattens the first candidate's text parts into our
// response type.
func fromSDKResponse(resp *genai.GenerateContentResponse) (*TextResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, eris.New("gemini: empty response")
	}

	cand := resp.Candidates[0]
	var b strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}

	out := &TextResponse{
		Text:         b.String(),
		FinishReason: cand.FinishReason.String(),
	}
	if resp.UsageMetadata != nil {
		out.Usage = TokenUsage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
		}
	}
	return out, nil
}
