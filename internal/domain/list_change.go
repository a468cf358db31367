package domain

// ListChangeKind identifies which capability list changed.
type ListChangeKind string

const (
	ListChangeTools     ListChangeKind = "tools"
	ListChangeResources ListChangeKind = "resources"
	ListChangePrompts   ListChangeKind = "prompts"
	ListChangeItems     ListChangeKind = "items"
)

// ListChangeEvent is emitted after a list changes.
type ListChangeEvent struct {
	Kind ListChangeKind
	Name string
}

// ListChangeEmitter publishes list change events.
type ListChangeEmitter interface {
	EmitListChange(event ListChangeEvent)
}
