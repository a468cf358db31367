package notifications

import (
	"sync"

	"mcpstarter/internal/domain"
)

// ListChangeListener is invoked synchronously on the emitting goroutine.
type ListChangeListener func(domain.ListChangeEvent)

type listener struct {
	id int
	fn ListChangeListener
}

// ListChangeHub fans list change events out to in-process listeners keyed by
// kind. The zero value is not usable; a nil hub drops everything.
type ListChangeHub struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[domain.ListChangeKind][]listener
}

func NewListChangeHub() *ListChangeHub {
	return &ListChangeHub{listeners: make(map[domain.ListChangeKind][]listener)}
}

// EmitListChange runs the listeners for event.Kind in registration order.
// Listeners may register or remove listeners without deadlocking.
func (h *ListChangeHub) EmitListChange(event domain.ListChangeEvent) {
	if h == nil {
		return
	}
	h.mu.RLock()
	snapshot := make([]listener, len(h.listeners[event.Kind]))
	copy(snapshot, h.listeners[event.Kind])
	h.mu.RUnlock()

	for _, l := range snapshot {
		l.fn(event)
	}
}

// Listen registers fn for events of kind and returns a func that removes it.
func (h *ListChangeHub) Listen(kind domain.ListChangeKind, fn ListChangeListener) (stop func()) {
	if h == nil || fn == nil {
		return func() {}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.listeners[kind] = append(h.listeners[kind], listener{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(kind, id) })
	}
}

// Listeners reports how many listeners are registered for kind.
func (h *ListChangeHub) Listeners(kind domain.ListChangeKind) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[kind])
}

func (h *ListChangeHub) remove(kind domain.ListChangeKind, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	current := h.listeners[kind]
	for i, l := range current {
		if l.id == id {
			h.listeners[kind] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
}

var _ domain.ListChangeEmitter = (*ListChangeHub)(nil)
