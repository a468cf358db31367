//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"mcpstarter/internal/domain"
)

func InitializeApplication(ctx context.Context, cfg domain.ServeConfig, logging LoggingConfig) (*Application, error) {
	wire.Build(AppSet)
	return nil, nil
}

func InitializeTaskApplication(ctx context.Context, cfg domain.ServeConfig, logging LoggingConfig) (*TaskApplication, error) {
	wire.Build(TaskAppSet)
	return nil, nil
}
