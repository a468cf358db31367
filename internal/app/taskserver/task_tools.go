package taskserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/tasks"
)

type DataProcessingInput struct {
	DataSize *int `json:"data_size,omitempty" jsonschema:"Amount of data to process (simulated)"`
}

type ConfirmActionInput struct {
	Action string `json:"action" jsonschema:"The action to confirm"`
}

type GenerateContentInput struct {
	Prompt string `json:"prompt" jsonschema:"The prompt for content generation"`
}

func dataProcessingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "data_processing",
		Description: "Process data asynchronously with progress updates",
	}
}

func confirmActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "confirm_action",
		Description: "Demonstrates elicitation - requests user confirmation",
	}
}

func generateContentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_content",
		Description: "Generate content via LLM sampling within a task",
	}
}

func (s *TaskServer) dataProcessing(ctx context.Context, req *mcp.CallToolRequest, in DataProcessingInput) (*mcp.CallToolResult, TaskHandle, error) {
	size := domain.DefaultDataChunks
	if in.DataSize != nil {
		size = max(*in.DataSize, 0)
	}
	return s.start(ctx, req, "data_processing", func(tc *tasks.TaskContext) (*mcp.CallToolResult, error) {
		return s.processData(tc, size), nil
	})
}

// processData checks for cancellation before every chunk.
func (s *TaskServer) processData(tc *tasks.TaskContext, size int) *mcp.CallToolResult {
	_ = tc.UpdateStatus("Initializing data processing...")
	tc.Sleep(s.stepDelay / 2)

	for i := 0; i < size; i++ {
		if tc.Cancelled() {
			return textResult("Processing cancelled")
		}
		_ = tc.UpdateStatus(fmt.Sprintf("Processing chunk %d/%d...", i+1, size))
		tc.Sleep(s.stepDelay)
	}

	_ = tc.UpdateStatus("Finalizing results...")
	tc.Sleep(s.stepDelay / 2)
	return textResult(fmt.Sprintf("Successfully processed %d chunks of data!", size))
}

func (s *TaskServer) confirmAction(ctx context.Context, req *mcp.CallToolRequest, in ConfirmActionInput) (*mcp.CallToolResult, TaskHandle, error) {
	action := in.Action
	if action == "" {
		action = "perform unknown action"
	}
	return s.start(ctx, req, "confirm_action", func(tc *tasks.TaskContext) (*mcp.CallToolResult, error) {
		_ = tc.UpdateStatus("Waiting for user confirmation...")
		outcome, err := tc.Elicit(domain.FormRequest{
			Message: "Please confirm: " + action,
			Schema:  confirmationSchema(),
		})
		if err != nil {
			return nil, err
		}
		switch outcome.Action {
		case domain.ElicitAccept:
			if !outcome.Bool("confirm") {
				return textResult("Action declined: " + action), nil
			}
			reason := outcome.String("reason")
			if reason == "" {
				reason = "No reason provided"
			}
			return textResult(fmt.Sprintf("Action confirmed: %s\nReason: %s", action, reason)), nil
		case domain.ElicitDecline, domain.ElicitCancel:
			return textResult("Action declined: " + action), nil
		default:
			return nil, fmt.Errorf("unexpected elicitation action %q", outcome.Action)
		}
	})
}

func (s *TaskServer) generateContent(ctx context.Context, req *mcp.CallToolRequest, in GenerateContentInput) (*mcp.CallToolResult, TaskHandle, error) {
	prompt := in.Prompt
	if prompt == "" {
		prompt = "Write a short greeting"
	}
	return s.start(ctx, req, "generate_content", func(tc *tasks.TaskContext) (*mcp.CallToolResult, error) {
		_ = tc.UpdateStatus("Preparing to generate content...")
		tc.Sleep(s.stepDelay / 2)

		_ = tc.UpdateStatus("Calling LLM for generation...")
		res, err := tc.CreateMessage(domain.SamplingRequest{
			Prompt:    prompt,
			MaxTokens: domain.DefaultGenerateTokens,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			result := textResult("Content generation failed: " + err.Error())
			result.IsError = true
			return result, nil
		}
		text := res.Text
		if !res.IsText {
			text = "[Non-text response received]"
		}
		return textResult("Generated content:\n\n" + text), nil
	})
}

// confirmationSchema has no required keys so empty decline and cancel
// replies still validate.
func confirmationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"confirm": map[string]any{
				"type":        "boolean",
				"description": "Confirm the action",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Optional reason for your choice",
			},
		},
	}
}
