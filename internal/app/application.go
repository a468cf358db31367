package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mcpstarter/internal/app/prompts"
	"mcpstarter/internal/app/resources"
	"mcpstarter/internal/app/tools"
	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/catalog"
	"mcpstarter/internal/infra/notifications"
	"mcpstarter/internal/infra/registry"
	"mcpstarter/internal/infra/telemetry"
	"mcpstarter/internal/infra/transport"
)

// Application wires the starter server and its supporting services.
type Application struct {
	ctx    context.Context
	cfg    domain.ServeConfig
	logger *zap.Logger

	registry    *prometheus.Registry
	metrics     domain.Metrics
	health      *telemetry.HealthTracker
	logs        *telemetry.LogBroadcaster
	listChanges *notifications.ListChangeHub

	server    *mcp.Server
	tools     *registry.ToolRegistry
	toolset   *tools.Toolset
	resources *resources.Resources
	prompts   *prompts.Prompts
	items     *catalog.Store
	watcher   *catalog.Watcher
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context      context.Context
	ServeConfig  domain.ServeConfig
	Logger       *zap.Logger
	Registry     *prometheus.Registry
	Metrics      domain.Metrics
	Health       *telemetry.HealthTracker
	Logs         *telemetry.LogBroadcaster
	ListChanges  *notifications.ListChangeHub
	Server       *mcp.Server
	ToolRegistry *registry.ToolRegistry
	Toolset      *tools.Toolset
	Resources    *resources.Resources
	Prompts      *prompts.Prompts
	Items        *catalog.Store
	Watcher      *catalog.Watcher
}

// NewApplication constructs the application runtime.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		ctx:         ctx,
		cfg:         opts.ServeConfig,
		logger:      logger,
		registry:    opts.Registry,
		metrics:     opts.Metrics,
		health:      opts.Health,
		logs:        opts.Logs,
		listChanges: opts.ListChanges,
		server:      opts.Server,
		tools:       opts.ToolRegistry,
		toolset:     opts.Toolset,
		resources:   opts.Resources,
		prompts:     opts.Prompts,
		items:       opts.Items,
		watcher:     opts.Watcher,
	}
}

// Server exposes the configured MCP server.
func (a *Application) Server() *mcp.Server {
	return a.server
}

// Register installs tools, resources and prompts and hooks the list-change
// listeners. Run calls it; tests call it directly to serve in memory.
func (a *Application) Register() error {
	a.listChanges.Listen(domain.ListChangeTools, func(domain.ListChangeEvent) {
		a.metrics.SetRegisteredTools(a.tools.Count())
	})
	a.listChanges.Listen(domain.ListChangeItems, func(domain.ListChangeEvent) {
		a.notifyItemsUpdated()
	})

	if err := a.toolset.Register(); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	if err := a.resources.Register(); err != nil {
		return fmt.Errorf("register resources: %w", err)
	}
	if err := a.prompts.Register(); err != nil {
		return fmt.Errorf("register prompts: %w", err)
	}
	a.health.Set("catalog", "ok")
	return nil
}

// Run serves the configured transport and blocks until shutdown.
func (a *Application) Run() error {
	a.logger.Info("configuration loaded",
		zap.String("transport", a.cfg.Transport),
		zap.String("items", a.cfg.ItemsPath),
		zap.Bool("watch_items", a.watcher != nil),
	)

	if err := a.Register(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	go newLogBridge(a.server, a.logs, a.logger).Run(ctx)

	if a.watcher != nil {
		go func() {
			if err := a.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.health.Set("catalog", "failed")
				a.logger.Warn("item watcher stopped", zap.Error(err))
			}
		}()
	}

	switch a.cfg.Transport {
	case domain.TransportHTTP:
		return transport.ServeHTTP(ctx, a.server, transport.HTTPOptions{
			Addr:           a.cfg.Addr(),
			Health:         a.health,
			AllowedOrigins: a.cfg.AllowedOrigins,
			Observability: telemetry.HTTPServerOptions{
				EnableMetrics: true,
				Registry:      a.registry,
			},
		}, a.logger)
	default:
		if a.cfg.MetricsAddr != "" {
			go a.serveObservability(ctx)
		}
		return transport.RunStdio(ctx, a.server, a.health, a.logger)
	}
}

// serveObservability runs /metrics and /healthz beside the stdio transport,
// which has no HTTP listener of its own.
func (a *Application) serveObservability(ctx context.Context) {
	err := telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
		Addr:          a.cfg.MetricsAddr,
		EnableMetrics: true,
		EnableHealthz: true,
		Health:        a.health,
		Registry:      a.registry,
	}, a.logger)
	if err != nil {
		a.logger.Warn("observability server stopped", zap.Error(err))
	}
}

func (a *Application) notifyItemsUpdated() {
	if a.items == nil {
		return
	}
	for _, id := range a.items.IDs() {
		uri := resources.ItemURI(id)
		if err := a.server.ResourceUpdated(a.ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			a.logger.Debug("resource update notification failed", zap.String("uri", uri), zap.Error(err))
		}
	}
}
