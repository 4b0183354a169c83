package textgen

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"leadscout_backend/platform/ai/moonshot"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// ProviderMoonshot is the source name reported for Kimi output.
	ProviderMoonshot = "moonshot"

	moonshotAppName = "leadscout-notes-analyzer"
)

// MoonshotProvider drafts texts with a single-turn ADK agent backed by Kimi.
type MoonshotProvider struct {
	runner         *runner.Runner
	sessionService session.Service
	runMu          sync.Mutex
}

// NewMoonshotProvider creates the agent for apiKey.
func NewMoonshotProvider(apiKey, modelName string) (*MoonshotProvider, error) {
	kimi := moonshot.NewModel(moonshot.Config{
		APIKey:   apiKey,
		Model:    modelName,
		JSONMode: true,
	})
	return newMoonshotProvider(kimi)
}

func newMoonshotProvider(llm model.LLM) (*MoonshotProvider, error) {
	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "NotesAnalyzer",
		Model:       llm,
		Description: "Summarizes sales call notes and drafts a follow-up SMS.",
		Instruction: SystemInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("moonshot: create agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        moonshotAppName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("moonshot: create runner: %w", err)
	}

	return &MoonshotProvider{runner: r, sessionService: sessionService}, nil
}

func (p *MoonshotProvider) Name() string { return ProviderMoonshot }

func (p *MoonshotProvider) Generate(ctx context.Context, req Request) (Result, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	sessionID := uuid.New().String()
	userID := "notes-analyzer"

	if _, err := p.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   moonshotAppName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return Result{}, fmt.Errorf("moonshot: create session: %w", err)
	}
	defer func() {
		_ = p.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   moonshotAppName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: BuildPrompt(req)}},
	}

	var out strings.Builder
	for event, err := range p.runner.Run(ctx, userID, sessionID, userMessage, agent.RunConfig{StreamingMode: agent.StreamingModeNone}) {
		if err != nil {
			return Result{}, fmt.Errorf("moonshot: run: %w", err)
		}
		if event == nil || event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			out.WriteString(part.Text)
		}
	}

	return ParseResponse(out.String())
}
