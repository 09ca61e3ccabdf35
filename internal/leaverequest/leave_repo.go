package leaverequest

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	// FindAll scopes to one employee when employeeID is non-nil and
	// optionally filters by status. Newest first.
	FindAll(ctx context.Context, employeeID *uint, status string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	Delete(ctx context.Context, id uint) error
	CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID *uint, status string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	q := r.db.WithContext(ctx).Preload("Employee").Preload("Employee.User")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&lr, id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// FindByIDForUpdate locks the row; the lock covers leave_requests only,
// the preloads are plain reads.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Employee").
		Preload("Employee.User").
		First(&lr, id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	// Preloaded associations are read-only here.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lr).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, id).Error
}

func (r *repository) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Count(&n).Error
	return n, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
