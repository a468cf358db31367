package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcpstarter/internal/domain"
)

func TestManagerCreateAndResult(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	payload := json.RawMessage(`{"ok":true}`)
	task, err := manager.Create(ctx, "client-a", domain.TaskCreateOptions{ToolName: "data_processing"}, func(_ context.Context) (domain.TaskRunResult, error) {
		return domain.TaskRunResult{Result: payload}, nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, task.TaskID)
	require.Equal(t, domain.TaskStatusWorking, task.Status)
	require.Equal(t, "data_processing", task.ToolName)

	result, err := manager.Result(ctx, "client-a", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, result.Status)
	require.JSONEq(t, string(payload), string(result.Result))

	got, err := manager.Get(ctx, "client-a", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, got.Status)
}

func TestManagerOutlivesCreatingContext(t *testing.T) {
	manager := NewManager(Options{})
	reqCtx, cancelReq := context.WithCancel(context.Background())

	release := make(chan struct{})
	task, err := manager.Create(reqCtx, "", domain.TaskCreateOptions{}, func(ctx context.Context) (domain.TaskRunResult, error) {
		<-release
		return domain.TaskRunResult{Result: json.RawMessage(`{}`)}, ctx.Err()
	})
	require.NoError(t, err)
	cancelReq()
	close(release)

	result, err := manager.Result(context.Background(), "", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, result.Status)
}

func TestManagerCancel(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	task, err := manager.Create(ctx, "client-a", domain.TaskCreateOptions{}, func(ctx context.Context) (domain.TaskRunResult, error) {
		<-ctx.Done()
		return domain.TaskRunResult{}, ctx.Err()
	})
	require.NoError(t, err)

	require.NoError(t, manager.Cancel(ctx, "client-a", task.TaskID))

	result, err := manager.Result(ctx, "client-a", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCancelled, result.Status)

	err = manager.Cancel(ctx, "client-a", task.TaskID)
	require.ErrorIs(t, err, domain.ErrTaskTerminal)
}

func TestManagerFailure(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	task, err := manager.Create(ctx, "", domain.TaskCreateOptions{}, func(context.Context) (domain.TaskRunResult, error) {
		return domain.TaskRunResult{}, errors.New("disk on fire")
	})
	require.NoError(t, err)

	result, err := manager.Result(ctx, "", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusFailed, result.Status)
	require.Equal(t, "disk on fire", result.Error)
}

func TestManagerPanicFailsTask(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	task, err := manager.Create(ctx, "", domain.TaskCreateOptions{}, func(context.Context) (domain.TaskRunResult, error) {
		panic("unexpected")
	})
	require.NoError(t, err)

	result, err := manager.Result(ctx, "", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusFailed, result.Status)
	require.Contains(t, result.Error, "unexpected")
}

func TestManagerUpdateStatus(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	release := make(chan struct{})
	task, err := manager.Create(ctx, "", domain.TaskCreateOptions{}, func(context.Context) (domain.TaskRunResult, error) {
		<-release
		return domain.TaskRunResult{}, nil
	})
	require.NoError(t, err)

	require.NoError(t, manager.UpdateStatus(task.TaskID, domain.TaskStatusInputRequired, "Waiting for user confirmation..."))
	got, err := manager.Get(ctx, "", task.TaskID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInputRequired, got.Status)
	require.Equal(t, "Waiting for user confirmation...", got.StatusMessage)

	require.Error(t, manager.UpdateStatus(task.TaskID, domain.TaskStatusCompleted, "nope"))
	require.ErrorIs(t, manager.UpdateStatus("missing", domain.TaskStatusWorking, "x"), domain.ErrTaskNotFound)

	close(release)
	_, err = manager.Result(ctx, "", task.TaskID)
	require.NoError(t, err)
	require.ErrorIs(t, manager.UpdateStatus(task.TaskID, domain.TaskStatusWorking, "late"), domain.ErrTaskTerminal)
}

func TestManagerList(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := manager.Create(ctx, "client-a", domain.TaskCreateOptions{}, func(_ context.Context) (domain.TaskRunResult, error) {
			return domain.TaskRunResult{Result: json.RawMessage(`{}`)}, nil
		})
		require.NoError(t, err)
	}

	page, err := manager.List(ctx, "client-a", "", 2)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 2)
	require.NotEmpty(t, page.NextCursor)

	page2, err := manager.List(ctx, "client-a", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Tasks, 1)
	require.Empty(t, page2.NextCursor)

	other, err := manager.List(ctx, "client-b", "", 10)
	require.NoError(t, err)
	require.Empty(t, other.Tasks)

	_, err = manager.List(ctx, "client-a", "bogus", 2)
	require.ErrorIs(t, err, domain.ErrInvalidCursor)
}

func TestManagerOwnerIsolation(t *testing.T) {
	manager := NewManager(Options{})
	ctx := context.Background()

	task, err := manager.Create(ctx, "client-a", domain.TaskCreateOptions{}, func(context.Context) (domain.TaskRunResult, error) {
		return domain.TaskRunResult{}, nil
	})
	require.NoError(t, err)

	_, err = manager.Get(ctx, "client-b", task.TaskID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.ErrorIs(t, manager.Cancel(ctx, "client-b", task.TaskID), domain.ErrTaskNotFound)
}

func TestManagerTTLExpiryFallsBackToArchive(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	manager := NewManager(Options{Archive: store})
	base := time.Unix(0, 0)
	manager.now = func() time.Time { return base }
	ctx := context.Background()

	ttl := int64(10)
	task, err := manager.Create(ctx, "client-a", domain.TaskCreateOptions{TTL: &ttl}, func(_ context.Context) (domain.TaskRunResult, error) {
		return domain.TaskRunResult{Result: json.RawMessage(`{"n":1}`)}, nil
	})
	require.NoError(t, err)

	_, err = manager.Result(ctx, "client-a", task.TaskID)
	require.NoError(t, err)

	manager.now = func() time.Time { return base.Add(time.Second) }

	page, err := manager.List(ctx, "client-a", "", 10)
	require.NoError(t, err)
	require.Empty(t, page.Tasks)

	require.Eventually(t, func() bool {
		got, err := manager.Get(ctx, "client-a", task.TaskID)
		return err == nil && got.Status == domain.TaskStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	result, err := manager.Result(ctx, "client-a", task.TaskID)
	require.NoError(t, err)
	require.JSONEq(t, `{"n":1}`, string(result.Result))

	_, err = manager.Get(ctx, "client-b", task.TaskID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestManagerGetUnknown(t *testing.T) {
	manager := NewManager(Options{})
	_, err := manager.Get(context.Background(), "", "task-missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = manager.Result(context.Background(), "", "task-missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestManagerListCursorSurvivesPurge(t *testing.T) {
	manager := NewManager(Options{})
	base := time.Unix(0, 0)
	manager.now = func() time.Time { return base }
	ctx := context.Background()

	short := int64(5)
	var ids []string
	for i := 0; i < 4; i++ {
		opts := domain.TaskCreateOptions{}
		if i == 0 {
			opts.TTL = &short
		}
		task, err := manager.Create(ctx, "", opts, func(context.Context) (domain.TaskRunResult, error) {
			return domain.TaskRunResult{}, nil
		})
		require.NoError(t, err)
		_, err = manager.Result(ctx, "", task.TaskID)
		require.NoError(t, err)
		ids = append(ids, task.TaskID)
	}

	first, err := manager.List(ctx, "", "", 2)
	require.NoError(t, err)
	require.Equal(t, []string{ids[0], ids[1]}, taskIDs(first.Tasks))

	manager.now = func() time.Time { return base.Add(time.Second) }

	second, err := manager.List(ctx, "", first.NextCursor, 2)
	require.NoError(t, err)
	require.Equal(t, []string{ids[2], ids[3]}, taskIDs(second.Tasks))
	require.Empty(t, second.NextCursor)
}

func TestManagerCreateRequiresRunner(t *testing.T) {
	_, err := NewManager(Options{}).Create(context.Background(), "", domain.TaskCreateOptions{}, nil)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeInvalidArgument, code)
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.TaskID)
	}
	return ids
}
