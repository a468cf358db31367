package domain

// ElicitAction is the user's response to an elicitation request.
type ElicitAction string

const (
	ElicitAccept  ElicitAction = "accept"
	ElicitDecline ElicitAction = "decline"
	ElicitCancel  ElicitAction = "cancel"
)

// ElicitOutcome is the result of an elicitation round-trip. Content is only
// populated for ElicitAccept.
type ElicitOutcome struct {
	Action  ElicitAction
	Content map[string]any
}

func (o ElicitOutcome) Accepted() bool { return o.Action == ElicitAccept }

// Bool returns a boolean field of accepted content.
func (o ElicitOutcome) Bool(key string) bool {
	if o.Action != ElicitAccept {
		return false
	}
	v, _ := o.Content[key].(bool)
	return v
}

// String returns a string field of accepted content.
func (o ElicitOutcome) String(key string) string {
	if o.Action != ElicitAccept {
		return ""
	}
	v, _ := o.Content[key].(string)
	return v
}

// ParseElicitAction maps a wire action onto ElicitAction. Unknown values are
// treated as cancel.
func ParseElicitAction(raw string) ElicitAction {
	switch ElicitAction(raw) {
	case ElicitAccept:
		return ElicitAccept
	case ElicitDecline:
		return ElicitDecline
	default:
		return ElicitCancel
	}
}

// FormRequest describes a form elicitation.
type FormRequest struct {
	Message string
	Schema  any
}

// URLRequest describes a URL elicitation.
type URLRequest struct {
	Message string
	URL     string
}
