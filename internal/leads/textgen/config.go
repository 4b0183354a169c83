package textgen

import (
	"context"
	"fmt"
	"log/slog"

	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
)

// NewFromConfig builds a Generator with every provider that has an API key,
// in the order Gemini, OpenAI, Moonshot. Without keys it is template-only.
func NewFromConfig(ctx context.Context, cfg config.TextGenConfig, log *logger.Logger) (*Generator, error) {
	var providers []Provider

	if key := cfg.GetGeminiAPIKey(); key != "" {
		p, err := NewGeminiProvider(ctx, key, cfg.GetGeminiModel())
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		providers = append(providers, WithTimeout(p, cfg.GetTextGenTimeout()))
	}
	if key := cfg.GetOpenAIAPIKey(); key != "" {
		p, err := NewOpenAIProvider(key, cfg.GetOpenAIModel())
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		providers = append(providers, WithTimeout(p, cfg.GetTextGenTimeout()))
	}
	if key := cfg.GetMoonshotAPIKey(); key != "" {
		p, err := NewMoonshotProvider(key, cfg.GetMoonshotModel())
		if err != nil {
			return nil, fmt.Errorf("moonshot provider: %w", err)
		}
		providers = append(providers, WithTimeout(p, cfg.GetTextGenTimeout()))
	}

	g := NewGenerator(log, providers...)
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	if log != nil {
		log.Info("text generator configured", slog.Any("providers", names))
	}
	return g, nil
}
