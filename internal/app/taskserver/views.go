package taskserver

import (
	"time"

	"mcpstarter/internal/domain"
)

// TaskView is the wire form of a task.
type TaskView struct {
	TaskID        string `json:"taskId"`
	ToolName      string `json:"toolName,omitempty"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage,omitempty"`
	CreatedAt     string `json:"createdAt"`
	LastUpdatedAt string `json:"lastUpdatedAt"`
	TTL           *int64 `json:"ttl,omitempty"`
	PollInterval  *int64 `json:"pollInterval,omitempty"`
}

// TaskHandle is returned by task-required tools in place of their result.
type TaskHandle struct {
	Task TaskView `json:"task"`
}

type TaskList struct {
	Tasks      []TaskView `json:"tasks"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

func newTaskView(task domain.Task) TaskView {
	return TaskView{
		TaskID:        task.TaskID,
		ToolName:      task.ToolName,
		Status:        string(task.Status),
		StatusMessage: task.StatusMessage,
		CreatedAt:     task.CreatedAt.UTC().Format(time.RFC3339Nano),
		LastUpdatedAt: task.LastUpdatedAt.UTC().Format(time.RFC3339Nano),
		TTL:           task.TTL,
		PollInterval:  task.PollInterval,
	}
}
