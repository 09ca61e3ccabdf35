package careerpath

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
)

// CareerPath holds the development plan for one employee. The unique
// index backs the one-path-per-employee rule against concurrent creates.
type CareerPath struct {
	ID              uint              `gorm:"primaryKey"`
	EmployeeID      uint              `gorm:"uniqueIndex:idx_career_paths_employee_id"`
	Employee        employee.Employee `gorm:"constraint:OnDelete:CASCADE"`
	CurrentPosition string            `gorm:"type:varchar(255)"`
	TargetPosition  *string           `gorm:"type:varchar(255)"`
	LastPromotion   *time.Time        `gorm:"type:date"`
	NextReview      *time.Time        `gorm:"type:date"`
	SkillsToDevelop *string           `gorm:"type:text"`
	Achievements    *string           `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CareerPath) TableName() string { return "career_paths" }
