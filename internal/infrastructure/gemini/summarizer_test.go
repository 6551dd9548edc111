package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.generateFunc(ctx, model, contents, config)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
	}}}
}

func TestSummarizer_Summarize(t *testing.T) {
	var gotModel string
	var gotPrompt string
	gen := &mockGenerator{generateFunc: func(_ context.Context, m string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = m
		gotPrompt = contents[0].Parts[0].Text
		require.NotNil(t, config.SystemInstruction)
		return textResponse("  Asks for an upfront fee over Telegram.  "), nil
	}}
	s := NewSummarizer(gen, "gemini-1.5-flash")

	summary, err := s.Summarize(context.Background(), port.SummaryRequest{
		Text:          "Pay the fee on Telegram",
		Label:         model.LabelFraudulent,
		Confidence:    97.5,
		Contributions: []model.TokenContribution{{Token: "fee", Weight: -0.8}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Asks for an upfront fee over Telegram.", summary)
	assert.Equal(t, "gemini-1.5-flash", gotModel)
	assert.Contains(t, gotPrompt, "Verdict: fraudulent (confidence 97.50%)")
	assert.Contains(t, gotPrompt, "fee (-0.800)")
}

func TestSummarizer_Errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		s := NewSummarizer(&mockGenerator{generateFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("quota exceeded")
		}}, "m")
		_, err := s.Summarize(context.Background(), port.SummaryRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("empty response", func(t *testing.T) {
		s := NewSummarizer(&mockGenerator{generateFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("   "), nil
		}}, "m")
		_, err := s.Summarize(context.Background(), port.SummaryRequest{})
		require.Error(t, err)
	})
}

func TestPrompt(t *testing.T) {
	p := Prompt(port.SummaryRequest{Text: strings.Repeat("a", 5000), Label: model.LabelLegitimate, Confidence: 88})

	assert.Contains(t, p, "Verdict: legitimate")
	assert.Contains(t, p, "Key terms: none")
	assert.Less(t, len(p), 2200)
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.Summarize(context.Background(), port.SummaryRequest{})
	require.ErrorIs(t, err, port.ErrNotConfigured)
}
