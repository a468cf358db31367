package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldTool       = "tool"
	FieldTaskID     = "task_id"
	FieldSessionID  = "session_id"
	FieldMethod     = "method"
	FieldDurationMs = "duration_ms"
	FieldLogSource  = "log_source"
	FieldRequestID  = "request_id"
)

const (
	EventToolCall         = "tool_call"
	EventToolLoaded       = "tool_loaded"
	EventTaskCreated      = "task_created"
	EventTaskFinished     = "task_finished"
	EventElicitation      = "elicitation"
	EventSampling         = "sampling"
	EventCatalogReloaded  = "catalog_reloaded"
	EventTransportStarted = "transport_started"
)

const (
	LogSourceCore  = "core"
	LogSourceTasks = "tasks"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ToolField(tool string) zap.Field {
	return zap.String(FieldTool, tool)
}

func TaskIDField(taskID string) zap.Field {
	return zap.String(FieldTaskID, taskID)
}

func SessionIDField(sessionID string) zap.Field {
	return zap.String(FieldSessionID, sessionID)
}

func MethodField(method string) zap.Field {
	return zap.String(FieldMethod, method)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}
