package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no generator credential is available.
var ErrNotConfigured = errors.New("API key not configured")

// TextGenerator turns a prompt into free text. Its output carries no format
// guarantee and must go through the ResponseSanitizer before use.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	models      contentGenerator
	modelName   string
	temperature float32
	logger      *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, temperature float32, logger *zap.Logger) (TextGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = "gemini-2.0-flash"
	}

	return &geminiService{
		models:      client.Models,
		modelName:   model,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.logger.Error("gemini request failed", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	// A blank reply is malformed output, not an upstream failure. It is
	// handed on so the sanitizer rejects it and the fallback content is used.
	if resp == nil {
		g.logger.Warn("gemini returned no response", zap.String("model", g.modelName))
		return "", nil
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("gemini returned no text content", zap.String("model", g.modelName))
		return text, nil
	}

	g.logger.Debug("gemini response received",
		zap.String("model", g.modelName),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)),
	)

	return text, nil
}
