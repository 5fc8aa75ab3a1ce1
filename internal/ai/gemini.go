package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiRecommender implements Recommender using Google's Gemini models.
type GeminiRecommender struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiRecommender initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiRecommender(ctx context.Context, apiKey string) (*GeminiRecommender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)

	// Low temperature keeps the marker-formatted reply consistent.
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(200)

	return &GeminiRecommender{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (r *GeminiRecommender) Close() {
	r.client.Close()
}

// Recommend sends the ride-optimization prompt to Gemini and returns the reply text.
func (r *GeminiRecommender) Recommend(ctx context.Context, req RecommendationRequest) (string, error) {
	resp, err := r.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return text, nil
}
