package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEvent() OutboxEvent {
	return OutboxEvent{
		ID:            "3f0c8b1e-0000-0000-0000-000000000001",
		AggregateType: "leave_request",
		AggregateID:   "1",
		EventType:     "leave_request_decided",
		Topic:         "hr.request.decisions.v1",
		Payload:       []byte(`{"status":"approved"}`),
		Status:        OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(validEvent()))
}

func TestValidateOutboxEventRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OutboxEvent)
	}{
		{"missing id", func(e *OutboxEvent) { e.ID = "" }},
		{"missing topic", func(e *OutboxEvent) { e.Topic = "" }},
		{"missing payload", func(e *OutboxEvent) { e.Payload = nil }},
		{"unknown status", func(e *OutboxEvent) { e.Status = "queued" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(&event)
			assert.Error(t, ValidateOutboxEvent(event))
		})
	}
}
