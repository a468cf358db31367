package telemetry

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mcpstarter/internal/domain"
)

func receive(t *testing.T, ch <-chan domain.LogEntry) domain.LogEntry {
	t.Helper()
	select {
	case entry := <-ch:
		return entry
	case <-time.After(time.Second):
		t.Fatal("expected log entry")
		return domain.LogEntry{}
	}
}

func TestLogBroadcaster_PublishesAboveMinLevel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := NewLogBroadcaster(zapcore.WarnLevel)
	ch := logs.Subscribe(ctx)
	logger := zap.New(logs.Core()).Named("tools").With(zap.String("session", "s-1"))

	logger.Info("ignored")
	logger.Warn("bonus tool loaded", zap.String("tool", "bonus_calculator"))

	entry := receive(t, ch)
	assert.Equal(t, domain.LogLevelWarning, entry.Level)
	assert.Equal(t, "tools", entry.Logger)
	assert.False(t, entry.Timestamp.IsZero())

	var data map[string]any
	require.NoError(t, json.Unmarshal(entry.DataJSON, &data))
	assert.Equal(t, "bonus tool loaded", data["message"])
	assert.Equal(t, "bonus_calculator", data["tool"])
	assert.Equal(t, "s-1", data["session"])
	assert.NotContains(t, data, "level")
	assert.NotContains(t, data, "logger")

	select {
	case entry := <-ch:
		t.Fatalf("unexpected entry %+v", entry)
	default:
	}
}

func TestLogBroadcaster_SetLevel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := NewLogBroadcaster(zapcore.ErrorLevel)
	ch := logs.Subscribe(ctx)
	logger := zap.New(logs.Core())

	logs.SetLevel(zapcore.DebugLevel)
	logger.Debug("now visible")

	entry := receive(t, ch)
	assert.Equal(t, domain.LogLevelDebug, entry.Level)
	assert.Equal(t, domain.ServerName, entry.Logger)
}

func TestLogBroadcaster_DropsWhenSubscriberIsFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := NewLogBroadcaster(zapcore.InfoLevel)
	_ = logs.Subscribe(ctx)
	logger := zap.New(logs.Core())

	for i := 0; i < DefaultLogBufferSize+3; i++ {
		logger.Info("flood")
	}
	assert.Equal(t, uint64(3), logs.Dropped())
}

func TestLogBroadcaster_SubscriptionClosesWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logs := NewLogBroadcaster(zapcore.InfoLevel)
	ch := logs.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestMapZapLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, MapZapLevel(zapcore.DebugLevel))
	assert.Equal(t, domain.LogLevelInfo, MapZapLevel(zapcore.InfoLevel))
	assert.Equal(t, domain.LogLevelError, MapZapLevel(zapcore.ErrorLevel))
	assert.Equal(t, domain.LogLevelEmergency, MapZapLevel(zapcore.FatalLevel))
}
