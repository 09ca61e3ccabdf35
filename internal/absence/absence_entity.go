package absence

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

var Rules = workflow.Rules[Status]{
	Initial: StatusPending,
	Transitions: map[Status][]Status{
		StatusPending: {StatusApproved, StatusRejected},
	},
	NoteRequired: map[Status]bool{
		StatusRejected: true,
	},
}

// AbsenceJustification is stored as a start date plus a duration; the
// display end date is derived, never persisted.
type AbsenceJustification struct {
	ID              uint              `gorm:"primaryKey"`
	EmployeeID      uint              `gorm:"index"`
	Employee        employee.Employee `gorm:"constraint:OnDelete:CASCADE"`
	AbsenceDate     time.Time         `gorm:"type:date"`
	Duration        int
	Type            string  `gorm:"type:varchar(50)"`
	Reason          string  `gorm:"type:text"`
	DocumentPath    *string `gorm:"type:varchar(255)"`
	Status          Status  `gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason *string
	ProcessedBy     *uint
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (AbsenceJustification) TableName() string { return "absence_justifications" }
