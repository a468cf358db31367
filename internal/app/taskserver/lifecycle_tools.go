package taskserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcpstarter/internal/domain"
)

type TaskIDInput struct {
	TaskID string `json:"taskId" jsonschema:"The task identifier returned when the task was created"`
}

type TaskListInput struct {
	Cursor string `json:"cursor,omitempty" jsonschema:"Opaque cursor from a previous tasks_list call"`
}

func tasksGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tasks_get",
		Description: "Get the current status of a task",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}
}

func tasksResultTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tasks_result",
		Description: "Wait for a task to finish and return its result",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

func tasksListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tasks_list",
		Description: "List tasks created by this session",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}
}

func tasksCancelTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tasks_cancel",
		Description: "Request cancellation of a running task",
	}
}

func (s *TaskServer) tasksGet(ctx context.Context, req *mcp.CallToolRequest, in TaskIDInput) (*mcp.CallToolResult, TaskView, error) {
	task, err := s.manager.Get(ctx, ownerOf(req), in.TaskID)
	if err != nil {
		return nil, TaskView{}, lookupError(in.TaskID, err)
	}
	return nil, newTaskView(task), nil
}

// tasksResult blocks until the task is terminal and returns the stored tool
// result. Failed and cancelled tasks come back as error results.
func (s *TaskServer) tasksResult(ctx context.Context, req *mcp.CallToolRequest, in TaskIDInput) (*mcp.CallToolResult, any, error) {
	result, err := s.manager.Result(ctx, ownerOf(req), in.TaskID)
	if err != nil {
		return nil, nil, lookupError(in.TaskID, err)
	}
	switch result.Status {
	case domain.TaskStatusCompleted:
		var out mcp.CallToolResult
		if len(result.Result) > 0 {
			if err := json.Unmarshal(result.Result, &out); err != nil {
				return nil, nil, fmt.Errorf("decode result of task %s: %w", in.TaskID, err)
			}
		}
		if out.Content == nil {
			out.Content = []mcp.Content{}
		}
		return &out, nil, nil
	case domain.TaskStatusCancelled:
		res := textResult(fmt.Sprintf("Task %s was cancelled.", in.TaskID))
		res.IsError = true
		return res, nil, nil
	default:
		res := textResult(fmt.Sprintf("Task %s failed: %s", in.TaskID, result.Error))
		res.IsError = true
		return res, nil, nil
	}
}

func (s *TaskServer) tasksList(ctx context.Context, req *mcp.CallToolRequest, in TaskListInput) (*mcp.CallToolResult, TaskList, error) {
	page, err := s.manager.List(ctx, ownerOf(req), in.Cursor, domain.DefaultTaskListLimit)
	if err != nil {
		return nil, TaskList{}, err
	}
	views := make([]TaskView, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		views = append(views, newTaskView(task))
	}
	return nil, TaskList{Tasks: views, NextCursor: page.NextCursor}, nil
}

func (s *TaskServer) tasksCancel(ctx context.Context, req *mcp.CallToolRequest, in TaskIDInput) (*mcp.CallToolResult, TaskView, error) {
	owner := ownerOf(req)
	if err := s.manager.Cancel(ctx, owner, in.TaskID); err != nil {
		return nil, TaskView{}, lookupError(in.TaskID, err)
	}
	task, err := s.manager.Get(ctx, owner, in.TaskID)
	if err != nil {
		return nil, TaskView{}, lookupError(in.TaskID, err)
	}
	return nil, newTaskView(task), nil
}

func lookupError(taskID string, err error) error {
	return fmt.Errorf("task %s: %w", taskID, err)
}
