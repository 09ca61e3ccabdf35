package events

import "time"

const RequestDecidedTopic = "hr.request.decisions.v1"

// RequestDecidedEvent is emitted whenever a leave request, absence
// justification or complaint reaches a terminal status.
type RequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Entity     string    `json:"entity"` // leave_request | absence_justification | complaint
	EntityID   uint      `json:"entity_id"`
	EmployeeID uint      `json:"employee_id"`
	Status     string    `json:"status"`
	DecidedBy  uint      `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
