// Package taskserver exposes long-running tools that always execute as
// tasks, plus the tools a client uses to poll, list and cancel them.
package taskserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/elicitation"
	"mcpstarter/internal/infra/registry"
	"mcpstarter/internal/infra/sampling"
	"mcpstarter/internal/infra/tasks"
	"mcpstarter/internal/infra/telemetry"
)

type Options struct {
	StepDelay time.Duration
	// TTL bounds how long a task stays in memory after creation. Zero keeps
	// tasks until the process exits.
	TTL      time.Duration
	Elicitor *elicitation.Client
	Sampler  *sampling.Client
	Logger   *zap.Logger
}

// TaskServer registers the task tools on a tool registry.
type TaskServer struct {
	registry  *registry.ToolRegistry
	manager   *tasks.Manager
	stepDelay time.Duration
	ttl       time.Duration
	elicitor  *elicitation.Client
	sampler   *sampling.Client
	logger    *zap.Logger
}

// work is the body of a task. It reports through tc and returns the tool
// result the client eventually fetches with tasks_result.
type work func(tc *tasks.TaskContext) (*mcp.CallToolResult, error)

func New(reg *registry.ToolRegistry, manager *tasks.Manager, opts Options) *TaskServer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stepDelay := opts.StepDelay
	if stepDelay < 0 {
		stepDelay = 0
	}
	elicitor := opts.Elicitor
	if elicitor == nil {
		elicitor = elicitation.NewClient(nil, logger)
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = sampling.NewClient(nil, logger)
	}
	return &TaskServer{
		registry:  reg,
		manager:   manager,
		stepDelay: stepDelay,
		ttl:       opts.TTL,
		elicitor:  elicitor,
		sampler:   sampler,
		logger:    logger.Named("taskserver"),
	}
}

func (s *TaskServer) Register() error {
	steps := []func() error{
		func() error { return registry.AddTool(s.registry, dataProcessingTool(), s.dataProcessing) },
		func() error { return registry.AddTool(s.registry, confirmActionTool(), s.confirmAction) },
		func() error { return registry.AddTool(s.registry, generateContentTool(), s.generateContent) },
		func() error { return registry.AddTool(s.registry, tasksGetTool(), s.tasksGet) },
		func() error { return registry.AddTool(s.registry, tasksResultTool(), s.tasksResult) },
		func() error { return registry.AddTool(s.registry, tasksListTool(), s.tasksList) },
		func() error { return registry.AddTool(s.registry, tasksCancelTool(), s.tasksCancel) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// start creates a task for tool and returns its handle immediately.
func (s *TaskServer) start(ctx context.Context, req *mcp.CallToolRequest, tool string, body work) (*mcp.CallToolResult, TaskHandle, error) {
	var session tasks.Session
	if req != nil && req.Session != nil {
		session = req.Session
	}
	owner := ownerOf(req)

	created := make(chan string, 1)
	task, err := s.manager.Create(ctx, owner, s.createOptions(tool), func(runCtx context.Context) (domain.TaskRunResult, error) {
		taskID := <-created
		tc := tasks.NewTaskContext(runCtx, taskID, s.manager, session, s.elicitor, s.sampler)
		result, err := body(tc)
		if err != nil {
			return domain.TaskRunResult{}, err
		}
		raw, err := json.Marshal(result)
		if err != nil {
			return domain.TaskRunResult{}, fmt.Errorf("encode %s result: %w", tool, err)
		}
		return domain.TaskRunResult{Result: raw}, nil
	})
	if err != nil {
		close(created)
		return nil, TaskHandle{}, err
	}
	created <- task.TaskID

	s.logger.Debug("task started", telemetry.TaskIDField(task.TaskID), telemetry.ToolField(tool))
	view := newTaskView(task)
	return textResult(fmt.Sprintf("Task %s created (%s). Poll it with tasks_get and fetch the outcome with tasks_result.", task.TaskID, task.Status)), TaskHandle{Task: view}, nil
}

func (s *TaskServer) createOptions(tool string) domain.TaskCreateOptions {
	opts := domain.TaskCreateOptions{ToolName: tool}
	if s.ttl > 0 {
		ms := s.ttl.Milliseconds()
		opts.TTL = &ms
	}
	return opts
}

// ownerOf scopes tasks to the calling session when the transport has
// session IDs.
func ownerOf(req *mcp.CallToolRequest) string {
	if req == nil || req.Session == nil {
		return ""
	}
	return req.Session.ID()
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
