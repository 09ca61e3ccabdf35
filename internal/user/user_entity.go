package user

import (
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
)

// User is the login account. Employee profile data lives on the employee
// aggregate; requests reference users only as weak processor/handler ids.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	Role      string `gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) RoleValue() identity.Role {
	return identity.Role(u.Role)
}
