package telemetry

import (
	"sort"
	"sync"
	"time"
)

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	UptimeSec int64             `json:"uptimeSeconds"`
}

// HealthTracker aggregates component readiness.
type HealthTracker struct {
	mu      sync.RWMutex
	started time.Time
	checks  map[string]string
	now     func() time.Time
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{
		started: time.Now(),
		checks:  make(map[string]string),
		now:     time.Now,
	}
}

// Set records a component state. Any state other than "ok" makes the report
// unhealthy.
func (t *HealthTracker) Set(component, state string) {
	t.mu.Lock()
	t.checks[component] = state
	t.mu.Unlock()
}

func (t *HealthTracker) Report() HealthReport {
	t.mu.RLock()
	defer t.mu.RUnlock()

	report := HealthReport{
		Status:    "ok",
		Checks:    make(map[string]string, len(t.checks)),
		UptimeSec: int64(t.now().Sub(t.started).Seconds()),
	}
	names := make([]string, 0, len(t.checks))
	for name := range t.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		state := t.checks[name]
		report.Checks[name] = state
		if state != "ok" {
			report.Status = "degraded"
		}
	}
	return report
}
