package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const openAIModel = "gpt-4o"

// OpenAIRecommender implements Recommender on top of the OpenAI chat API.
type OpenAIRecommender struct {
	llm *openai.LLM
}

func NewOpenAIRecommender(apiKey string) (*OpenAIRecommender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(openAIModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIRecommender{llm: llm}, nil
}

// Recommend sends the ride-optimization prompt to OpenAI and returns the reply text.
func (r *OpenAIRecommender) Recommend(ctx context.Context, req RecommendationRequest) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, r.llm, buildPrompt(req),
		llms.WithTemperature(0.1),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		return "", fmt.Errorf("openai generation error: %w", err)
	}
	text := strings.TrimSpace(out)
	if text == "" {
		return "", fmt.Errorf("openai: API returned empty completion")
	}
	return text, nil
}
