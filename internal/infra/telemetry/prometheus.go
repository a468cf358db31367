package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mcpstarter/internal/domain"
)

type PrometheusMetrics struct {
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	tasks            *prometheus.CounterVec
	activeTasks      prometheus.Gauge
	elicitations     *prometheus.CounterVec
	samplingRequests *prometheus.CounterVec
	registeredTools  prometheus.Gauge
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcpstarter_tool_calls_total",
				Help: "Total number of tool calls by outcome",
			},
			[]string{"tool", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcpstarter_tool_call_duration_seconds",
				Help:    "Duration of tool calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),
		tasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcpstarter_tasks_total",
				Help: "Total number of tasks by terminal status",
			},
			[]string{"tool", "status"},
		),
		activeTasks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcpstarter_active_tasks",
				Help: "Current number of non-terminal tasks",
			},
		),
		elicitations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcpstarter_elicitations_total",
				Help: "Total number of elicitation outcomes",
			},
			[]string{"mode", "action"},
		),
		samplingRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcpstarter_sampling_requests_total",
				Help: "Total number of sampling requests sent to clients",
			},
			[]string{"status"},
		),
		registeredTools: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcpstarter_registered_tools",
				Help: "Number of tools currently registered",
			},
		),
	}
}

func (p *PrometheusMetrics) ObserveToolCall(tool string, status domain.CallStatus, duration time.Duration) {
	p.toolCalls.WithLabelValues(tool, string(status)).Inc()
	p.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveTask(tool string, status domain.TaskStatus) {
	p.tasks.WithLabelValues(tool, string(status)).Inc()
}

func (p *PrometheusMetrics) SetActiveTasks(count int) {
	p.activeTasks.Set(float64(count))
}

func (p *PrometheusMetrics) ObserveElicitation(mode string, action domain.ElicitAction) {
	p.elicitations.WithLabelValues(mode, string(action)).Inc()
}

func (p *PrometheusMetrics) ObserveSampling(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.samplingRequests.WithLabelValues(status).Inc()
}

func (p *PrometheusMetrics) SetRegisteredTools(count int) {
	p.registeredTools.Set(float64(count))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
