package textgen

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProviderOpenAI is the source name reported for OpenAI output.
const ProviderOpenAI = "openai"

// OpenAIProvider drafts texts through any langchaingo chat model; in
// production an OpenAI chat model.
type OpenAIProvider struct {
	llm llms.Model
}

// NewOpenAIProvider creates an OpenAI chat model for apiKey.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("openai: create client: %w", err)
	}
	return NewLLMProvider(llm), nil
}

// NewLLMProvider wraps an existing langchaingo model.
func NewLLMProvider(llm llms.Model) *OpenAIProvider {
	return &OpenAIProvider{llm: llm}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (Result, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemInstruction),
		llms.TextParts(llms.ChatMessageTypeHuman, BuildPrompt(req)),
	}
	resp, err := p.llm.GenerateContent(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return Result{}, fmt.Errorf("openai: generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("openai: empty choices")
	}
	return ParseResponse(resp.Choices[0].Content)
}
