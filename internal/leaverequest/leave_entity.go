package leaverequest

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/workflow"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Rules is the leave request status machine. Rejections carry a reason.
var Rules = workflow.Rules[Status]{
	Initial: StatusPending,
	Transitions: map[Status][]Status{
		StatusPending: {StatusApproved, StatusRejected},
	},
	NoteRequired: map[Status]bool{
		StatusRejected: true,
	},
}

type LeaveRequest struct {
	ID              uint              `gorm:"primaryKey"`
	EmployeeID      uint              `gorm:"index"`
	Employee        employee.Employee `gorm:"constraint:OnDelete:CASCADE"`
	Type            string            `gorm:"type:varchar(50)"`
	StartDate       time.Time         `gorm:"type:date"`
	EndDate         time.Time         `gorm:"type:date"`
	Duration        int
	Reason          string `gorm:"type:text"`
	Status          Status `gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason *string
	ProcessedBy     *uint
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }
