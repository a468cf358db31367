package tasks

import (
	"context"
	"time"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/elicitation"
	"mcpstarter/internal/infra/sampling"
)

// Session is what a running task needs from the originating client session.
type Session interface {
	elicitation.Session
	sampling.Session
}

// TaskContext is handed to task handlers. It exposes status reporting,
// cooperative cancellation, and client round-trips that flip the task into
// input_required while waiting.
type TaskContext struct {
	ctx       context.Context
	id        string
	manager   domain.TaskManager
	session   Session
	elicitor  *elicitation.Client
	requester *sampling.Client
}

func NewTaskContext(ctx context.Context, id string, manager domain.TaskManager, session Session, elicitor *elicitation.Client, requester *sampling.Client) *TaskContext {
	return &TaskContext{
		ctx:       ctx,
		id:        id,
		manager:   manager,
		session:   session,
		elicitor:  elicitor,
		requester: requester,
	}
}

func (t *TaskContext) ID() string { return t.id }

func (t *TaskContext) Context() context.Context { return t.ctx }

// UpdateStatus publishes a working status message.
func (t *TaskContext) UpdateStatus(message string) error {
	return t.manager.UpdateStatus(t.id, domain.TaskStatusWorking, message)
}

// Cancelled reports whether cancellation was requested. Handlers check it at
// their own checkpoints.
func (t *TaskContext) Cancelled() bool {
	return t.ctx.Err() != nil
}

// Sleep pauses for d, returning early when the task is cancelled.
func (t *TaskContext) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-t.ctx.Done():
	case <-timer.C:
	}
}

// Elicit runs a form elicitation with the task in input_required.
func (t *TaskContext) Elicit(req domain.FormRequest) (domain.ElicitOutcome, error) {
	_ = t.manager.UpdateStatus(t.id, domain.TaskStatusInputRequired, req.Message)
	outcome, err := t.elicitor.Form(t.ctx, t.session, req)
	_ = t.manager.UpdateStatus(t.id, domain.TaskStatusWorking, "Input received.")
	return outcome, err
}

// CreateMessage asks the client for a completion.
func (t *TaskContext) CreateMessage(req domain.SamplingRequest) (domain.SamplingResult, error) {
	return t.requester.CreateMessage(t.ctx, t.session, req)
}
