package domain

import (
	"context"
	"encoding/json"
	"time"
)

// TaskStatus describes task lifecycle status.
type TaskStatus string

const (
	TaskStatusWorking       TaskStatus = "working"
	TaskStatusInputRequired TaskStatus = "input_required"
	TaskStatusCompleted     TaskStatus = "completed"
	TaskStatusFailed        TaskStatus = "failed"
	TaskStatusCancelled     TaskStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Task describes a tracked task.
type Task struct {
	TaskID        string     `json:"taskId"`
	ToolName      string     `json:"toolName,omitempty"`
	Status        TaskStatus `json:"status"`
	StatusMessage string     `json:"statusMessage,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	TTL           *int64     `json:"ttl,omitempty"`
	PollInterval  *int64     `json:"pollInterval,omitempty"`
}

// TaskResult holds the final result for a task. Result carries the
// serialized tool result once the task completes.
type TaskResult struct {
	Status TaskStatus      `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// TaskRecord is the archived form of a finished task.
type TaskRecord struct {
	Task   Task       `json:"task"`
	Result TaskResult `json:"result"`
	Owner  string     `json:"owner,omitempty"`
}

// TaskPage represents a paginated task list.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// TaskCreateOptions captures task creation preferences.
type TaskCreateOptions struct {
	ToolName     string `json:"toolName,omitempty"`
	TTL          *int64 `json:"ttl,omitempty"`
	PollInterval *int64 `json:"pollInterval,omitempty"`
}

// TaskRunResult holds the output of a task runner.
type TaskRunResult struct {
	Result json.RawMessage
}

// TaskRunner executes a task workload and returns its result.
type TaskRunner func(ctx context.Context) (TaskRunResult, error)

// TaskManager manages task lifecycle and results.
type TaskManager interface {
	Create(ctx context.Context, owner string, opts TaskCreateOptions, run TaskRunner) (Task, error)
	Get(ctx context.Context, owner, taskID string) (Task, error)
	List(ctx context.Context, owner, cursor string, limit int) (TaskPage, error)
	Result(ctx context.Context, owner, taskID string) (TaskResult, error)
	Cancel(ctx context.Context, owner, taskID string) error
	UpdateStatus(taskID string, status TaskStatus, message string) error
}

// TaskArchive persists finished tasks beyond their in-memory lifetime.
type TaskArchive interface {
	Put(record TaskRecord) error
	Get(taskID string) (TaskRecord, bool, error)
}
