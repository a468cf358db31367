package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mcpstarter/internal/app"
	"mcpstarter/internal/domain"
)

type starterOptions struct {
	configPath string
	cfg        domain.ServeConfig
	logger     *zap.Logger
}

func main() {
	opts := starterOptions{logger: zap.NewNop()}
	root := newRootCommand(&opts)
	if err := root.Execute(); err != nil {
		reportFailure(os.Stderr, opts.logger, err)
		os.Exit(1)
	}
}

// reportFailure logs err, or prints it to w when no logger exists yet. Flag
// parse errors surface before PersistentPreRunE has built one.
func reportFailure(w io.Writer, logger *zap.Logger, err error) {
	if logger != nil && logger.Core().Enabled(zapcore.ErrorLevel) {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
		return
	}
	fmt.Fprintf(w, "%s: %v\n", domain.ServerName, err)
}

func newRootCommand(opts *starterOptions) *cobra.Command {
	defaults := app.DefaultServeConfig()

	root := &cobra.Command{
		Use:           "mcpstarter",
		Short:         "MCP starter server with demo tools, resources and prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, opts.cfg, app.LoggingConfig{
				Logger: opts.logger,
				Level:  opts.cfg.LogLevel,
			})
			if err != nil {
				return err
			}
			return ignoreShutdown(application.Run())
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	root.Flags().Bool("stdio", false, "serve over stdin/stdout (default)")
	root.Flags().Bool("http", false, "serve streamable HTTP and WebSocket")
	root.Flags().String("host", defaults.Host, "HTTP listen host")
	root.Flags().Int("port", defaults.Port, "HTTP listen port")
	root.Flags().String("items", "", "item catalog file (yaml, toml or json)")
	root.Flags().Bool("watch-items", false, "reload the item catalog when the file changes")
	root.Flags().String("metrics-addr", "", "listen address for /metrics and /healthz in stdio mode")
	root.Flags().Duration("step-delay", defaults.StepDelay, "delay between long_task steps")
	root.Flags().String("greeting", defaults.Greeting, "greeting used by the hello tool")

	root.AddCommand(newTasksCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// load resolves configuration for the running command and builds the logger.
func (o *starterOptions) load(cmd *cobra.Command) error {
	o.logger = provisionalLogger(cmd)

	defaults := app.DefaultServeConfig()
	if cmd.Name() == tasksCommandName {
		defaults = app.DefaultTaskConfig()
	}
	cfg, err := app.LoadConfig(app.ConfigOptions{
		File:     o.configPath,
		Flags:    cmd.Flags(),
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	applyTransportFlags(cmd.Flags(), &cfg)
	logger, err := app.NewBaseLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}

// provisionalLogger honours --log-level before the config is resolved so
// config errors are still logged.
func provisionalLogger(cmd *cobra.Command) *zap.Logger {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		level = domain.DefaultLogLevel
	}
	if logger, err := app.NewBaseLogger(level); err == nil {
		return logger
	}
	if logger, err := app.NewBaseLogger(domain.DefaultLogLevel); err == nil {
		return logger
	}
	return zap.NewNop()
}

// applyTransportFlags lets --stdio and --http override the configured
// transport. stdio wins when both are given.
func applyTransportFlags(flags *pflag.FlagSet, cfg *domain.ServeConfig) {
	stdio, _ := flags.GetBool("stdio")
	http, _ := flags.GetBool("http")
	switch {
	case stdio && flags.Changed("stdio"):
		cfg.Transport = domain.TransportStdio
	case http && flags.Changed("http"):
		cfg.Transport = domain.TransportHTTP
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", domain.ServerName, app.Version, app.Build)
		},
	}
}

func ignoreShutdown(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
