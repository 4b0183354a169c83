// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"
	"fmt"

	"leadscout_backend/internal/events"
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/leads/handler"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/leads/textgen"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/metrics"
	"leadscout_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps are the shared dependencies the module is built from. Metrics and
// Mailer are optional.
type Deps struct {
	Pool      *pgxpool.Pool
	Bus       events.Bus
	Validator *validator.Validator
	Config    config.TextGenConfig
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Mailer    service.Mailer
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(ctx context.Context, deps Deps) (*Module, error) {
	if err := transport.RegisterValidations(deps.Validator); err != nil {
		return nil, fmt.Errorf("register lead validations: %w", err)
	}

	generator, err := textgen.NewFromConfig(ctx, deps.Config, deps.Logger)
	if err != nil {
		return nil, err
	}

	svc := NewService(repository.New(deps.Pool), generator, deps)
	return &Module{
		handler: handler.New(svc, deps.Validator),
		service: svc,
	}, nil
}

// NewService builds the leads service over store. Workers that need no HTTP
// surface use it directly.
func NewService(store service.Store, generator *textgen.Generator, deps Deps) *service.Service {
	opts := []service.Option{service.WithMetrics(deps.Metrics)}
	if deps.Mailer != nil {
		opts = append(opts, service.WithMailer(deps.Mailer))
	}
	return service.New(store, generator, deps.Bus, deps.Logger, opts...)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for the scheduler and CLI.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1, ctx.WriteLimiter...)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

var _ NextBestActionRefresher = (*service.Service)(nil)
