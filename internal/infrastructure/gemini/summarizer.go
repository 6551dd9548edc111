// Package gemini explains classifier predictions in prose with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

const (
	maxPromptText = 2000

	systemPrompt = "You review job postings for fraud. Given a classifier verdict and the terms that drove it, " +
		"explain in two sentences why the posting was judged this way. Plain text only."
)

var (
	_ port.Summarizer = (*Summarizer)(nil)
	_ port.Summarizer = Unconfigured{}
)

// ContentGenerator is satisfied by the Models service of a genai client.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Summarizer implements port.Summarizer on Gemini.
type Summarizer struct {
	models ContentGenerator
	model  string
}

// NewClient creates a Gemini API client for the key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return client, nil
}

// NewSummarizer creates a summarizer; pass client.Models as models.
func NewSummarizer(models ContentGenerator, modelName string) *Summarizer {
	return &Summarizer{models: models, model: modelName}
}

// Summarize asks the model for a short explanation of the prediction.
func (s *Summarizer) Summarize(ctx context.Context, req port.SummaryRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	result, err := s.models.GenerateContent(ctx, s.model, genai.Text(Prompt(req)), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

// Prompt renders the user prompt for a request.
func Prompt(req port.SummaryRequest) string {
	verdict := "legitimate"
	if req.Label == model.LabelFraudulent {
		verdict = "fraudulent"
	}

	terms := make([]string, 0, len(req.Contributions))
	for _, c := range req.Contributions {
		terms = append(terms, fmt.Sprintf("%s (%.3f)", c.Token, c.Weight))
	}
	if len(terms) == 0 {
		terms = append(terms, "none")
	}

	text := req.Text
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s (confidence %.2f%%)\n", verdict, req.Confidence)
	fmt.Fprintf(&b, "Key terms: %s\n", strings.Join(terms, ", "))
	fmt.Fprintf(&b, "Posting:\n%s", text)
	return b.String()
}

// Unconfigured is used when no API key is set.
type Unconfigured struct{}

func (Unconfigured) Summarize(context.Context, port.SummaryRequest) (string, error) {
	return "", port.ErrNotConfigured
}
