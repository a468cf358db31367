package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mcpstarter/internal/domain"
)

// DefaultLogBufferSize bounds each subscriber queue. Entries beyond it are
// dropped so a slow client never stalls the logger.
const DefaultLogBufferSize = 64

// LogBroadcaster turns zap entries into domain.LogEntry values destined for
// client log notifications.
type LogBroadcaster struct {
	level   zap.AtomicLevel
	mu      sync.RWMutex
	subs    map[chan domain.LogEntry]struct{}
	dropped atomic.Uint64
}

func NewLogBroadcaster(minLevel zapcore.Level) *LogBroadcaster {
	return &LogBroadcaster{
		level: zap.NewAtomicLevelAt(minLevel),
		subs:  make(map[chan domain.LogEntry]struct{}),
	}
}

// SetLevel changes the minimum forwarded level.
func (b *LogBroadcaster) SetLevel(level zapcore.Level) {
	b.level.SetLevel(level)
}

// Dropped counts entries lost to full subscriber queues.
func (b *LogBroadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Core returns a zap core that encodes entries as JSON and hands them to the
// broadcaster. Tee it next to the process logger's core.
func (b *LogBroadcaster) Core() zapcore.Core {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		NameKey:        "logger",
		TimeKey:        "timestamp",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	return zapcore.NewCore(encoder, zapcore.AddSync(broadcastSink{broadcaster: b}), b.level)
}

// Subscribe returns a channel of entries that closes when ctx is done.
func (b *LogBroadcaster) Subscribe(ctx context.Context) <-chan domain.LogEntry {
	ch := make(chan domain.LogEntry, DefaultLogBufferSize)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	})
	return ch
}

func (b *LogBroadcaster) publish(entry domain.LogEntry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- entry:
		default:
			b.dropped.Add(1)
		}
	}
}

type broadcastSink struct {
	broadcaster *LogBroadcaster
}

// Write never fails; a line that cannot be decoded is skipped.
func (s broadcastSink) Write(p []byte) (int, error) {
	if entry, err := decodeLogLine(p); err == nil {
		s.broadcaster.publish(entry)
	}
	return len(p), nil
}

// decodeLogLine lifts level and logger out of an encoded line. The remaining
// keys (message, timestamp, fields) become the notification payload.
func decodeLogLine(line []byte) (domain.LogEntry, error) {
	var data map[string]any
	if err := json.Unmarshal(line, &data); err != nil {
		return domain.LogEntry{}, err
	}

	level := zapcore.InfoLevel
	if raw, ok := data["level"].(string); ok {
		_ = level.UnmarshalText([]byte(raw))
	}
	name, _ := data["logger"].(string)
	delete(data, "level")
	delete(data, "logger")

	ts := time.Now()
	if raw, ok := data["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			ts = parsed
		}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return domain.LogEntry{}, err
	}
	return domain.LogEntry{
		Logger:    loggerName(name),
		Level:     MapZapLevel(level),
		Timestamp: ts,
		DataJSON:  payload,
	}, nil
}

func loggerName(name string) string {
	if name == "" {
		return domain.ServerName
	}
	return name
}

// MapZapLevel converts a zap level to a client log level.
func MapZapLevel(level zapcore.Level) domain.LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return domain.LogLevelDebug
	case zapcore.WarnLevel:
		return domain.LogLevelWarning
	case zapcore.ErrorLevel:
		return domain.LogLevelError
	case zapcore.DPanicLevel:
		return domain.LogLevelCritical
	case zapcore.PanicLevel:
		return domain.LogLevelAlert
	case zapcore.FatalLevel:
		return domain.LogLevelEmergency
	default:
		return domain.LogLevelInfo
	}
}
