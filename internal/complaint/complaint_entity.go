package complaint

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/workflow"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
	StatusRejected Status = "rejected"
)

// Rules allows resolving straight from pending; the in_review step is
// optional. Terminal decisions carry resolution details.
var Rules = workflow.Rules[Status]{
	Initial: StatusPending,
	Transitions: map[Status][]Status{
		StatusPending:  {StatusInReview, StatusResolved, StatusRejected},
		StatusInReview: {StatusResolved, StatusRejected},
	},
	NoteRequired: map[Status]bool{
		StatusResolved: true,
		StatusRejected: true,
	},
}

type Complaint struct {
	ID                uint              `gorm:"primaryKey"`
	EmployeeID        uint              `gorm:"index"`
	Employee          employee.Employee `gorm:"constraint:OnDelete:CASCADE"`
	Subject           string            `gorm:"type:varchar(255)"`
	Description       string            `gorm:"type:text"`
	AttachmentPath    *string           `gorm:"type:varchar(255)"`
	Status            Status            `gorm:"type:varchar(20);default:'pending';index"`
	ResolutionDetails *string
	HandledBy         *uint
	ResolvedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Complaint) TableName() string { return "complaints" }
