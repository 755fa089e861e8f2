// Package generator talks to the external text generation service that
// drafts survey questions. Every backend reports failures through Response
// instead of returning errors.
package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"surveybot/model"
)

// Normalized error codes.
const (
	CodeLocalException = "LOCAL_EXCEPTION"
	CodeEmptyBody      = "EMPTY_BODY"
	CodeEmptyResponse  = "EMPTY_RESPONSE"
	codeHTTPPrefix     = "HTTP_"
)

// Response is the outcome of one generator call. Body holds the generated
// text on success and a short detail on failure.
type Response struct {
	Success   bool
	Body      string
	ErrorCode string
}

// Text returns the body of a successful response and "" otherwise.
func (r Response) Text() string {
	if !r.Success {
		return ""
	}
	return r.Body
}

func failure(code, detail string) Response {
	return Response{ErrorCode: code, Body: detail}
}

// Client sends a prompt and returns the generated text.
type Client interface {
	SendPrompt(ctx context.Context, prompt string) Response
}

// HistoryClearer is implemented by backends that keep a conversation history.
type HistoryClearer interface {
	ClearHistory(ctx context.Context) Response
}

const (
	BackendHTTP  = "http"
	BackendGenAI = "genai"
)

// New builds the client selected by cfg.Backend.
func New(ctx context.Context, cfg model.GeneratorConfig, logger *zap.Logger) (Client, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("generator: http backend needs base_url")
		}
		return NewHTTPClient(cfg.BaseURL, cfg.UserID, cfg.Timeout, logger), nil
	case BackendGenAI:
		c, err := NewGenAIClient(ctx, cfg.APIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("generator: unknown backend %q", cfg.Backend)
	}
}
