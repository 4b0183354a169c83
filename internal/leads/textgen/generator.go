package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadscout_backend/internal/leads/objections"
	"leadscout_backend/platform/logger"
)

// SourceTemplate marks output produced by the built-in templates.
const SourceTemplate = "template"

// ErrIncompleteResponse is returned by providers whose reply lacks a summary
// or follow-up.
var ErrIncompleteResponse = errors.New("textgen: response missing summary or followUp")

// Request is what a provider needs to draft texts.
type Request struct {
	Notes       string
	Objections  objections.Set
	ContactName string
}

// Result is a provider's drafted texts.
type Result struct {
	Summary  string `json:"summary"`
	FollowUp string `json:"followUp"`
}

// Provider drafts texts with an external service. Any error makes the
// Generator move on.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (Result, error)
}

// Output is the Generator's answer. Source names the provider that produced
// it, or "template".
type Output struct {
	Summary  string `json:"summary"`
	FollowUp string `json:"followUp"`
	Source   string `json:"source"`
	UsedLLM  bool   `json:"usedLLM"`
}

// Generator tries each configured provider once, in order, and falls back to
// the templates. It never returns an error.
type Generator struct {
	providers []Provider
	log       *logger.Logger
}

// NewGenerator builds a Generator. With no providers it is template-only.
func NewGenerator(log *logger.Logger, providers ...Provider) *Generator {
	active := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			active = append(active, p)
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{providers: active, log: log}
}

// HasProviders reports whether any external provider is configured.
func (g *Generator) HasProviders() bool {
	return len(g.providers) > 0
}

// Generate drafts the summary and follow-up for req.
func (g *Generator) Generate(ctx context.Context, req Request) Output {
	if len(req.Objections) == 0 {
		req.Objections = objections.Extract(req.Notes)
	}

	for _, p := range g.providers {
		res, err := safeGenerate(ctx, p, req)
		if err == nil {
			err = validate(res)
		}
		if err != nil {
			g.log.WithContext(ctx).ProviderFallback(p.Name(), err)
			continue
		}
		return Output{
			Summary:  strings.TrimSpace(res.Summary),
			FollowUp: strings.TrimSpace(res.FollowUp),
			Source:   p.Name(),
			UsedLLM:  true,
		}
	}

	return Output{
		Summary:  Summarize(req.Notes, req.Objections),
		FollowUp: FollowUp(req.Notes, req.Objections, req.ContactName),
		Source:   SourceTemplate,
	}
}

// safeGenerate turns a provider panic into an error.
func safeGenerate(ctx context.Context, p Provider, req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("textgen: provider %s panicked: %v", p.Name(), r)
		}
	}()
	return p.Generate(ctx, req)
}

func validate(res Result) error {
	if strings.TrimSpace(res.Summary) == "" || strings.TrimSpace(res.FollowUp) == "" {
		return ErrIncompleteResponse
	}
	return nil
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call of p by d. A non-positive d returns
// p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 || p == nil {
		return p
	}
	return timeoutProvider{Provider: p, timeout: d}
}

func (p timeoutProvider) Generate(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.Provider.Generate(ctx, req)
}
