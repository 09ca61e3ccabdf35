package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID uint      `json:"employee_id"`
	UserID     uint      `json:"user_id"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}
