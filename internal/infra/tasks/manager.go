package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

const (
	defaultPollInterval = domain.DefaultTaskPollMillis * time.Millisecond
	defaultListLimit    = domain.DefaultTaskListLimit
)

var statusMessages = map[domain.TaskStatus]string{
	domain.TaskStatusWorking:   "The operation is now in progress.",
	domain.TaskStatusCompleted: "The task completed successfully.",
	domain.TaskStatusCancelled: "The task was cancelled.",
}

// Manager keeps live tasks in memory. Finished tasks are copied to the
// optional archive so they stay readable after TTL purging.
type Manager struct {
	mu      sync.Mutex
	live    map[string]*entry
	order   []*entry // ascending seq
	seq     uint64
	now     func() time.Time
	archive domain.TaskArchive
	metrics domain.Metrics
	logger  *zap.Logger
}

type entry struct {
	seq     uint64
	owner   string
	task    domain.Task
	result  domain.TaskResult
	done    chan struct{}
	stop    context.CancelFunc
	expires time.Time // zero means never
}

func (e *entry) visibleTo(requester string) bool {
	return ownedBy(e.owner, requester)
}

func (e *entry) record() domain.TaskRecord {
	return domain.TaskRecord{Task: e.task, Result: e.result, Owner: e.owner}
}

type Options struct {
	Archive domain.TaskArchive
	Metrics domain.Metrics
	Logger  *zap.Logger
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		live:    make(map[string]*entry),
		now:     time.Now,
		archive: opts.Archive,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if m.metrics == nil {
		m.metrics = telemetry.NewNoopMetrics()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.logger = m.logger.Named("tasks")
	return m
}

// Create registers a task and starts run in its own goroutine. The run
// context survives cancellation of ctx; only Cancel or TTL expiry stops it.
func (m *Manager) Create(ctx context.Context, owner string, opts domain.TaskCreateOptions, run domain.TaskRunner) (domain.Task, error) {
	if run == nil {
		return domain.Task{}, domain.E(domain.CodeInvalidArgument, "tasks.Create", "task runner is required", nil)
	}

	poll := opts.PollInterval
	if poll == nil {
		ms := defaultPollInterval.Milliseconds()
		poll = &ms
	}
	runCtx, stop := context.WithCancel(context.WithoutCancel(ctx))

	m.mu.Lock()
	now := m.now()
	m.seq++
	e := &entry{
		seq:   m.seq,
		owner: owner,
		task: domain.Task{
			TaskID:        "task-" + uuid.NewString(),
			ToolName:      opts.ToolName,
			Status:        domain.TaskStatusWorking,
			StatusMessage: statusMessages[domain.TaskStatusWorking],
			CreatedAt:     now,
			LastUpdatedAt: now,
			TTL:           opts.TTL,
			PollInterval:  poll,
		},
		result: domain.TaskResult{Status: domain.TaskStatusWorking},
		done:   make(chan struct{}),
		stop:   stop,
	}
	if opts.TTL != nil && *opts.TTL > 0 {
		e.expires = now.Add(time.Duration(*opts.TTL) * time.Millisecond)
	}
	m.live[e.task.TaskID] = e
	m.order = append(m.order, e)
	m.metrics.SetActiveTasks(m.activeLocked())
	task := e.task
	m.mu.Unlock()

	m.logger.Info("task created",
		telemetry.EventField(telemetry.EventTaskCreated),
		telemetry.TaskIDField(task.TaskID),
		telemetry.ToolField(task.ToolName),
	)
	go m.execute(runCtx, e, run)
	return task, nil
}

func (m *Manager) Get(ctx context.Context, owner, taskID string) (domain.Task, error) {
	if e := m.find(owner, taskID); e != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		return e.task, nil
	}
	rec, err := m.fromArchive(owner, taskID)
	return rec.Task, err
}

// List pages through live tasks visible to owner in creation order. The
// cursor is the sequence number of the last task on the previous page, so
// purges between calls never shift a page.
func (m *Manager) List(ctx context.Context, owner, cursor string, limit int) (domain.TaskPage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var after uint64
	if cursor != "" {
		n, err := strconv.ParseUint(cursor, 10, 64)
		if err != nil {
			return domain.TaskPage{}, domain.ErrInvalidCursor
		}
		after = n
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeLocked()

	page := domain.TaskPage{Tasks: []domain.Task{}}
	for _, e := range m.order {
		if e.seq <= after || !e.visibleTo(owner) {
			continue
		}
		if len(page.Tasks) == limit {
			page.NextCursor = strconv.FormatUint(after, 10)
			break
		}
		page.Tasks = append(page.Tasks, e.task)
		after = e.seq
	}
	return page, nil
}

// Result blocks until the task finishes or ctx is done.
func (m *Manager) Result(ctx context.Context, owner, taskID string) (domain.TaskResult, error) {
	e := m.find(owner, taskID)
	if e == nil {
		rec, err := m.fromArchive(owner, taskID)
		return rec.Result, err
	}
	select {
	case <-e.done:
	case <-ctx.Done():
		return domain.TaskResult{}, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return e.result, nil
}

// Cancel finishes a running task as cancelled and signals its context; the
// runner notices at its next checkpoint.
func (m *Manager) Cancel(ctx context.Context, owner, taskID string) error {
	e := m.find(owner, taskID)
	if e == nil {
		return domain.ErrTaskNotFound
	}

	m.mu.Lock()
	if e.task.Status.Terminal() {
		m.mu.Unlock()
		return fmt.Errorf("cancel %s: %w", taskID, domain.ErrTaskTerminal)
	}
	e.stop()
	m.finishLocked(e, domain.TaskResult{Status: domain.TaskStatusCancelled})
	rec := e.record()
	m.mu.Unlock()

	m.persist(rec)
	return nil
}

// UpdateStatus records a non-terminal status change for a running task.
func (m *Manager) UpdateStatus(taskID string, status domain.TaskStatus, message string) error {
	if status.Terminal() {
		return domain.E(domain.CodeInvalidArgument, "tasks.UpdateStatus", "terminal status must be set by the runner", nil)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live[taskID]
	switch {
	case !ok:
		return domain.ErrTaskNotFound
	case e.task.Status.Terminal():
		return fmt.Errorf("update %s: %w", taskID, domain.ErrTaskTerminal)
	}
	e.task.Status = status
	e.task.StatusMessage = message
	e.task.LastUpdatedAt = m.now()
	return nil
}

func (m *Manager) execute(ctx context.Context, e *entry, run domain.TaskRunner) {
	out, err := runGuarded(ctx, run)

	var result domain.TaskResult
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		result = domain.TaskResult{Status: domain.TaskStatusCancelled}
	case err != nil:
		result = domain.TaskResult{Status: domain.TaskStatusFailed, Error: err.Error()}
	default:
		result = domain.TaskResult{Status: domain.TaskStatusCompleted, Result: out.Result}
	}

	m.mu.Lock()
	if e.task.Status.Terminal() {
		// already cancelled
		m.mu.Unlock()
		return
	}
	m.finishLocked(e, result)
	e.stop()
	rec := e.record()
	m.mu.Unlock()

	m.persist(rec)
}

func runGuarded(ctx context.Context, run domain.TaskRunner) (out domain.TaskRunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return run(ctx)
}

func (m *Manager) finishLocked(e *entry, result domain.TaskResult) {
	msg, ok := statusMessages[result.Status]
	if !ok {
		msg = result.Error
	}
	e.task.Status = result.Status
	e.task.StatusMessage = msg
	e.task.LastUpdatedAt = m.now()
	e.result = result
	close(e.done)

	m.metrics.ObserveTask(e.task.ToolName, result.Status)
	m.metrics.SetActiveTasks(m.activeLocked())
	m.logger.Info("task finished",
		telemetry.EventField(telemetry.EventTaskFinished),
		telemetry.TaskIDField(e.task.TaskID),
		telemetry.ToolField(e.task.ToolName),
		zap.String("status", string(result.Status)),
		telemetry.DurationField(e.task.LastUpdatedAt.Sub(e.task.CreatedAt)),
	)
}

func (m *Manager) persist(rec domain.TaskRecord) {
	if m.archive == nil {
		return
	}
	if err := m.archive.Put(rec); err != nil {
		m.logger.Warn("archive task failed", telemetry.TaskIDField(rec.Task.TaskID), zap.Error(err))
	}
}

func (m *Manager) fromArchive(owner, taskID string) (domain.TaskRecord, error) {
	if m.archive == nil {
		return domain.TaskRecord{}, domain.ErrTaskNotFound
	}
	rec, ok, err := m.archive.Get(taskID)
	switch {
	case err != nil:
		return domain.TaskRecord{}, err
	case !ok || !ownedBy(rec.Owner, owner):
		return domain.TaskRecord{}, domain.ErrTaskNotFound
	}
	return rec, nil
}

// find returns the live entry for taskID if owner may see it.
func (m *Manager) find(owner, taskID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeLocked()
	e, ok := m.live[taskID]
	if !ok || !e.visibleTo(owner) {
		return nil
	}
	return e
}

func (m *Manager) activeLocked() int {
	n := 0
	for _, e := range m.live {
		if !e.task.Status.Terminal() {
			n++
		}
	}
	return n
}

func (m *Manager) purgeLocked() {
	now := m.now()
	kept := m.order[:0]
	for _, e := range m.order {
		if !e.expires.IsZero() && e.expires.Before(now) {
			e.stop()
			delete(m.live, e.task.TaskID)
			continue
		}
		kept = append(kept, e)
	}
	clear(m.order[len(kept):])
	m.order = kept
}

// ownedBy treats an empty requester as privileged: sessionless transports
// such as stdio have no owner to match against.
func ownedBy(taskOwner, requester string) bool {
	return requester == "" || taskOwner == requester
}

var _ domain.TaskManager = (*Manager)(nil)
