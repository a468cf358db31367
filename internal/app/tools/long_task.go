package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/infra/progress"
)

type LongTaskInput struct {
	TaskName string `json:"task_name" jsonschema:"Name for this task"`
}

func longTaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "long_task",
		Title:       "Long Running Task",
		Description: "A task that takes 5 seconds and reports progress along the way.",
		Annotations: simulatedExternalAnnotations("Long Running Task"),
		Icons:       emojiIcon(iconHourglass),
	}
}

// longTask reports i/steps before each step and 1.0 once done.
func (t *Toolset) longTask(ctx context.Context, req *mcp.CallToolRequest, in LongTaskInput) (*mcp.CallToolResult, any, error) {
	t.notifyLog(ctx, req, "Starting task: "+in.TaskName)

	reporter := progress.ForRequest(req, 1.0)
	for i := 0; i < t.steps; i++ {
		if err := reporter.Report(ctx, float64(i)/float64(t.steps), fmt.Sprintf("Step %d/%d", i+1, t.steps)); err != nil {
			t.logger.Debug("progress notification failed", zap.Error(err))
		}
		if err := sleep(ctx, t.stepDelay); err != nil {
			return nil, nil, err
		}
	}
	if err := reporter.Report(ctx, 1.0, "Complete!"); err != nil {
		t.logger.Debug("progress notification failed", zap.Error(err))
	}

	return textResult(fmt.Sprintf("Task \"%s\" completed successfully after %d steps!", in.TaskName, t.steps)), nil, nil
}

func (t *Toolset) notifyLog(ctx context.Context, req *mcp.CallToolRequest, message string) {
	t.logger.Info(message)
	if req == nil || req.Session == nil {
		return
	}
	err := req.Session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  "info",
		Logger: "long_task",
		Data:   message,
	})
	if err != nil {
		t.logger.Debug("log notification failed", zap.Error(err))
	}
}
