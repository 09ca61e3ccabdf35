package absence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, aj *AbsenceJustification) error
	FindAll(ctx context.Context, employeeID *uint, status string) ([]AbsenceJustification, error)
	FindByID(ctx context.Context, id uint) (*AbsenceJustification, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*AbsenceJustification, error)
	Update(ctx context.Context, aj *AbsenceJustification) error
	Delete(ctx context.Context, id uint) error
	CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error)
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

func (r *repository) Create(ctx context.Context, aj *AbsenceJustification) error {
	return r.db.WithContext(ctx).Create(aj).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID *uint, status string) ([]AbsenceJustification, error) {
	var justifications []AbsenceJustification
	q := r.db.WithContext(ctx).Preload("Employee").Preload("Employee.User")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&justifications).Error
	return justifications, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*AbsenceJustification, error) {
	var aj AbsenceJustification
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&aj, id).Error
	if err != nil {
		return nil, err
	}
	return &aj, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*AbsenceJustification, error) {
	var aj AbsenceJustification
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Employee").
		Preload("Employee.User").
		First(&aj, id).Error
	if err != nil {
		return nil, err
	}
	return &aj, nil
}

func (r *repository) Update(ctx context.Context, aj *AbsenceJustification) error {
	// Preloaded associations are read-only here.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(aj).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&AbsenceJustification{}, id).Error
}

func (r *repository) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&AbsenceJustification{}).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Count(&n).Error
	return n, err
}
