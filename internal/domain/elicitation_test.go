package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseElicitAction(t *testing.T) {
	assert.Equal(t, ElicitAccept, ParseElicitAction("accept"))
	assert.Equal(t, ElicitDecline, ParseElicitAction("decline"))
	assert.Equal(t, ElicitCancel, ParseElicitAction("cancel"))
	assert.Equal(t, ElicitCancel, ParseElicitAction(""))
	assert.Equal(t, ElicitCancel, ParseElicitAction("maybe"))
}

func TestElicitOutcome_ContentOnlyOnAccept(t *testing.T) {
	content := map[string]any{"confirm": true, "reason": "ok"}

	accepted := ElicitOutcome{Action: ElicitAccept, Content: content}
	assert.True(t, accepted.Accepted())
	assert.True(t, accepted.Bool("confirm"))
	assert.Equal(t, "ok", accepted.String("reason"))
	assert.False(t, accepted.Bool("reason"), "wrong type reads as zero")

	declined := ElicitOutcome{Action: ElicitDecline, Content: content}
	assert.False(t, declined.Accepted())
	assert.False(t, declined.Bool("confirm"))
	assert.Empty(t, declined.String("reason"))
}

func TestTaskStatus_Terminal(t *testing.T) {
	assert.False(t, TaskStatusWorking.Terminal())
	assert.False(t, TaskStatusInputRequired.Terminal())
	assert.True(t, TaskStatusCompleted.Terminal())
	assert.True(t, TaskStatusFailed.Terminal())
	assert.True(t, TaskStatusCancelled.Terminal())
}
