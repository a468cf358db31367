package main

import (
	"github.com/spf13/cobra"

	"mcpstarter/internal/app"
)

const tasksCommandName = "tasks"

func newTasksCommand(opts *starterOptions) *cobra.Command {
	defaults := app.DefaultTaskConfig()

	cmd := &cobra.Command{
		Use:   tasksCommandName,
		Short: "Run the experimental task server over streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeTaskApplication(ctx, opts.cfg, app.LoggingConfig{
				Logger: opts.logger,
				Level:  opts.cfg.LogLevel,
			})
			if err != nil {
				return err
			}
			return ignoreShutdown(application.Run())
		},
	}

	cmd.Flags().String("host", defaults.Host, "HTTP listen host")
	cmd.Flags().Int("port", defaults.Port, "HTTP listen port")
	cmd.Flags().String("task-store", "", "bbolt file that archives finished tasks")
	cmd.Flags().Duration("task-ttl", 0, "drop tasks from memory this long after creation (0 keeps them)")
	cmd.Flags().Duration("step-delay", defaults.StepDelay, "delay between data_processing chunks")
	return cmd
}
