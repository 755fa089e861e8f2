package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGenAIModel = "gemini-2.0-flash"

// GenAIClient generates questions with the Gemini API.
type GenAIClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGenAIClient creates a Gemini backed client.
func NewGenAIClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generator: genai api key is required")
	}
	if model == "" {
		model = defaultGenAIModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: create genai client: %w", err)
	}
	return &GenAIClient{client: client, model: model, logger: logger.Named("generator.genai")}, nil
}

// SendPrompt implements Client. Each call is a fresh single-turn request, so
// there is no history to clear.
func (c *GenAIClient) SendPrompt(ctx context.Context, prompt string) Response {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Warn("genai request failed", zap.String("model", c.model), zap.Error(err))
		return failure(CodeLocalException, err.Error())
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return failure(CodeEmptyResponse, "")
	}
	return Response{Success: true, Body: text}
}
