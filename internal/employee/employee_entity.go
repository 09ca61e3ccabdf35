package employee

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/user"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee is the aggregate root every request entity hangs off.
// LeaveBalance is mutated by direct edits and by the approval side effect
// on leave requests, always inside the same transaction as the status
// write.
type Employee struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"uniqueIndex;not null"`
	User         user.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Position     string    `gorm:"type:varchar(255);not null"`
	Department   string    `gorm:"type:varchar(255);not null"`
	EmployeeCode string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	HireDate     time.Time `gorm:"type:date;not null"`
	LeaveBalance int       `gorm:"not null;default:30"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"`
	Grade        *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
