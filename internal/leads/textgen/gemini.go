package textgen

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ProviderGemini is the source name reported for Gemini output.
const ProviderGemini = "gemini"

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider drafts texts with the Gemini API.
type GeminiProvider struct {
	models geminiModels
	model  string
}

// NewGeminiProvider creates a Gemini API client for apiKey.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{models: client.Models, model: model}, nil
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (Result, error) {
	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(BuildPrompt(req)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return Result{}, fmt.Errorf("gemini: generate: %w", err)
	}
	if resp == nil {
		return Result{}, fmt.Errorf("gemini: empty response")
	}
	return ParseResponse(resp.Text())
}
