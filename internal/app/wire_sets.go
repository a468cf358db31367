//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewLogBroadcaster,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
	NewListChangeHub,
	NewSamplingClient,
	NewElicitationClient,
	NewToolRegistry,
)

var CatalogSet = wire.NewSet(
	NewItemLoader,
	NewItemStore,
	NewItemWatcher,
	NewCompleter,
)

var StarterSet = wire.NewSet(
	CatalogSet,
	NewMCPServer,
	NewResourceRegistry,
	NewPromptRegistry,
	NewToolState,
	NewToolset,
	NewResources,
	NewPrompts,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	StarterSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)

var TaskAppSet = wire.NewSet(
	CoreInfraSet,
	NewTaskMCPServer,
	NewTaskArchive,
	NewTaskManager,
	NewTaskServer,
	wire.Struct(new(TaskApplicationOptions), "*"),
	NewTaskApplication,
)
