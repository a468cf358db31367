package telemetry

import (
	"time"

	"mcpstarter/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveToolCall(_ string, _ domain.CallStatus, _ time.Duration) {}

func (n *NoopMetrics) ObserveTask(_ string, _ domain.TaskStatus) {}

func (n *NoopMetrics) SetActiveTasks(_ int) {}

func (n *NoopMetrics) ObserveElicitation(_ string, _ domain.ElicitAction) {}

func (n *NoopMetrics) ObserveSampling(_ error) {}

func (n *NoopMetrics) SetRegisteredTools(_ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
