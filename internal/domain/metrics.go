package domain

import "time"

// CallStatus labels the outcome of a tool call.
type CallStatus string

const (
	CallStatusSuccess   CallStatus = "success"
	CallStatusToolError CallStatus = "tool_error"
	CallStatusError     CallStatus = "error"
)

// Metrics records server observations.
type Metrics interface {
	ObserveToolCall(tool string, status CallStatus, duration time.Duration)
	ObserveTask(tool string, status TaskStatus)
	SetActiveTasks(count int)
	ObserveElicitation(mode string, action ElicitAction)
	ObserveSampling(err error)
	SetRegisteredTools(count int)
}
