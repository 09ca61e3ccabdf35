package complaint

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cp *Complaint) error
	FindAll(ctx context.Context, employeeID *uint, status string) ([]Complaint, error)
	FindByID(ctx context.Context, id uint) (*Complaint, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Complaint, error)
	Update(ctx context.Context, cp *Complaint) error
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

func (r *repository) Create(ctx context.Context, cp *Complaint) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID *uint, status string) ([]Complaint, error) {
	var complaints []Complaint
	q := r.db.WithContext(ctx).Preload("Employee").Preload("Employee.User")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Complaint, error) {
	var cp Complaint
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&cp, id).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*Complaint, error) {
	var cp Complaint
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Employee").
		Preload("Employee.User").
		First(&cp, id).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) Update(ctx context.Context, cp *Complaint) error {
	// Preloaded associations are read-only here.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(cp).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Complaint{}, id).Error
}

func (r *repository) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Complaint{}).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Count(&n).Error
	return n, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Complaint{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
