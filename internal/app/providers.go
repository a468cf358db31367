package app

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mcpstarter/internal/app/prompts"
	"mcpstarter/internal/app/resources"
	"mcpstarter/internal/app/taskserver"
	"mcpstarter/internal/app/tools"
	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/catalog"
	"mcpstarter/internal/infra/elicitation"
	"mcpstarter/internal/infra/notifications"
	"mcpstarter/internal/infra/registry"
	"mcpstarter/internal/infra/sampling"
	"mcpstarter/internal/infra/tasks"
	"mcpstarter/internal/infra/telemetry"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

func NewListChangeHub() *notifications.ListChangeHub {
	return notifications.NewListChangeHub()
}

func NewItemLoader(logger *zap.Logger) *catalog.Loader {
	return catalog.NewLoader(logger)
}

// NewItemStore loads the configured catalog, or the embedded one when no
// path is set.
func NewItemStore(ctx context.Context, cfg domain.ServeConfig, loader *catalog.Loader) (*catalog.Store, error) {
	items, err := loader.Load(ctx, cfg.ItemsPath)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return catalog.NewStore(items), nil
}

// NewItemWatcher returns nil unless hot reload of an external catalog is on.
func NewItemWatcher(cfg domain.ServeConfig, loader *catalog.Loader, store *catalog.Store, listChanges *notifications.ListChangeHub, logger *zap.Logger) *catalog.Watcher {
	if !cfg.WatchItems || cfg.ItemsPath == "" {
		return nil
	}
	return catalog.NewWatcher(loader, store, cfg.ItemsPath, listChanges, logger)
}

func NewCompleter(store *catalog.Store) *prompts.Completer {
	return prompts.NewCompleter(store)
}

// NewMCPServer builds the starter server. Resource subscriptions are accepted
// so clients can follow item://{id} updates after a catalog reload.
func NewMCPServer(completer *prompts.Completer, metrics domain.Metrics, logger *zap.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    domain.ServerName,
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions:      serverInstructions,
		HasTools:          true,
		HasResources:      true,
		HasPrompts:        true,
		CompletionHandler: completer.Complete,
		SubscribeHandler: func(context.Context, *mcp.SubscribeRequest) error {
			return nil
		},
		UnsubscribeHandler: func(context.Context, *mcp.UnsubscribeRequest) error {
			return nil
		},
	})
	server.AddReceivingMiddleware(telemetry.Middleware(metrics, logger))
	return server
}

func NewToolRegistry(server *mcp.Server, listChanges *notifications.ListChangeHub, logger *zap.Logger) *registry.ToolRegistry {
	return registry.NewToolRegistry(server, listChanges, logger)
}

func NewResourceRegistry(server *mcp.Server, listChanges *notifications.ListChangeHub, logger *zap.Logger) *registry.ResourceRegistry {
	return registry.NewResourceRegistry(server, listChanges, logger)
}

func NewPromptRegistry(server *mcp.Server, listChanges *notifications.ListChangeHub, logger *zap.Logger) *registry.PromptRegistry {
	return registry.NewPromptRegistry(server, listChanges, logger)
}

func NewSamplingClient(metrics domain.Metrics, logger *zap.Logger) *sampling.Client {
	return sampling.NewClient(metrics, logger)
}

func NewElicitationClient(metrics domain.Metrics, logger *zap.Logger) *elicitation.Client {
	return elicitation.NewClient(metrics, logger)
}

func NewToolState() *tools.State {
	return tools.NewState()
}

func NewToolset(
	cfg domain.ServeConfig,
	reg *registry.ToolRegistry,
	state *tools.State,
	sampler *sampling.Client,
	elicitor *elicitation.Client,
	logger *zap.Logger,
) *tools.Toolset {
	return tools.New(reg, state, tools.Options{
		Greeting:  cfg.Greeting,
		Steps:     domain.DefaultLongTaskSteps,
		StepDelay: cfg.StepDelay,
		Sampler:   sampler,
		Elicitor:  elicitor,
		Logger:    logger,
	})
}

func NewResources(reg *registry.ResourceRegistry, store *catalog.Store, logger *zap.Logger) *resources.Resources {
	return resources.New(reg, store, logger)
}

func NewPrompts(reg *registry.PromptRegistry, logger *zap.Logger) *prompts.Prompts {
	return prompts.New(reg, logger)
}

func NewTaskMCPServer(metrics domain.Metrics, logger *zap.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    domain.TaskServerName,
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: taskServerInstructions,
		HasTools:     true,
	})
	server.AddReceivingMiddleware(telemetry.Middleware(metrics, logger))
	return server
}

// NewTaskArchive opens the bbolt archive when a path is configured and
// returns nil otherwise.
func NewTaskArchive(cfg domain.ServeConfig) (*tasks.Store, error) {
	if cfg.TaskStore == "" {
		return nil, nil
	}
	return tasks.OpenStore(cfg.TaskStore)
}

func NewTaskManager(archive *tasks.Store, metrics domain.Metrics, logger *zap.Logger) *tasks.Manager {
	opts := tasks.Options{Metrics: metrics, Logger: logger}
	if archive != nil {
		opts.Archive = archive
	}
	return tasks.NewManager(opts)
}

func NewTaskServer(
	cfg domain.ServeConfig,
	reg *registry.ToolRegistry,
	manager *tasks.Manager,
	sampler *sampling.Client,
	elicitor *elicitation.Client,
	logger *zap.Logger,
) *taskserver.TaskServer {
	return taskserver.New(reg, manager, taskserver.Options{
		StepDelay: cfg.StepDelay,
		TTL:       cfg.TaskTTL,
		Elicitor:  elicitor,
		Sampler:   sampler,
		Logger:    logger,
	})
}
