package app

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mcpstarter/internal/app/taskserver"
	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/tasks"
	"mcpstarter/internal/infra/telemetry"
	"mcpstarter/internal/infra/transport"
)

// TaskApplication runs the experimental task server.
type TaskApplication struct {
	ctx      context.Context
	cfg      domain.ServeConfig
	logger   *zap.Logger
	registry *prometheus.Registry
	health   *telemetry.HealthTracker
	server   *mcp.Server
	tasks    *taskserver.TaskServer
	archive  *tasks.Store
}

// TaskApplicationOptions captures dependencies for TaskApplication.
type TaskApplicationOptions struct {
	Context     context.Context
	ServeConfig domain.ServeConfig
	Logger      *zap.Logger
	Registry    *prometheus.Registry
	Health      *telemetry.HealthTracker
	Server      *mcp.Server
	TaskServer  *taskserver.TaskServer
	Archive     *tasks.Store
}

func NewTaskApplication(opts TaskApplicationOptions) *TaskApplication {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskApplication{
		ctx:      ctx,
		cfg:      opts.ServeConfig,
		logger:   logger,
		registry: opts.Registry,
		health:   opts.Health,
		server:   opts.Server,
		tasks:    opts.TaskServer,
		archive:  opts.Archive,
	}
}

func (a *TaskApplication) Server() *mcp.Server {
	return a.server
}

func (a *TaskApplication) Register() error {
	if err := a.tasks.Register(); err != nil {
		return fmt.Errorf("register task tools: %w", err)
	}
	return nil
}

// Run serves streamable HTTP until shutdown and closes the archive.
func (a *TaskApplication) Run() error {
	defer a.Close()

	archivePath := ""
	if a.archive != nil {
		archivePath = a.archive.Path()
	}
	a.logger.Info("task server configured",
		zap.String("addr", a.cfg.Addr()),
		zap.String("task_store", archivePath),
		zap.Duration("task_ttl", a.cfg.TaskTTL),
	)

	if err := a.Register(); err != nil {
		return err
	}
	return transport.ServeHTTP(a.ctx, a.server, transport.HTTPOptions{
		Addr:           a.cfg.Addr(),
		Health:         a.health,
		AllowedOrigins: a.cfg.AllowedOrigins,
		Observability: telemetry.HTTPServerOptions{
			EnableMetrics: true,
			Registry:      a.registry,
		},
	}, a.logger)
}

func (a *TaskApplication) Close() {
	if a.archive == nil {
		return
	}
	if err := a.archive.Close(); err != nil {
		a.logger.Warn("close task archive failed", zap.Error(err))
	}
}
