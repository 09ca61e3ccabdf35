package dashboard

import (
	"context"

	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/leaverequest"

	"gorm.io/gorm"
)

// Repository gathers the aggregate queries behind the dashboards. Staff
// employee counts only consider employee-role accounts; admin and rh
// profiles are not headcount.
type Repository interface {
	CountEmployees(ctx context.Context, status string) (int64, error)
	RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error)
	RecentLeaveRequests(ctx context.Context, employeeID uint, limit int) ([]leaverequest.LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context, status string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Joins("JOIN users ON users.id = employees.user_id").
		Where("users.role = ?", "employee")
	if status != "" {
		q = q.Where("employees.status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *repository) RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = employees.user_id").
		Where("users.role = ?", "employee").
		Order("employees.created_at DESC").
		Limit(limit).
		Find(&employees).Error
	return employees, err
}

func (r *repository) RecentLeaveRequests(ctx context.Context, employeeID uint, limit int) ([]leaverequest.LeaveRequest, error) {
	var requests []leaverequest.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}
