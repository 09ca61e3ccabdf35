package careerpath

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cp *CareerPath) error
	FindAll(ctx context.Context) ([]CareerPath, error)
	FindByID(ctx context.Context, id uint) (*CareerPath, error)
	FindByEmployeeID(ctx context.Context, employeeID uint) (*CareerPath, error)
	Update(ctx context.Context, cp *CareerPath) error
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

func (r *repository) Create(ctx context.Context, cp *CareerPath) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]CareerPath, error) {
	var paths []CareerPath
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		Order("created_at DESC").
		Find(&paths).Error
	return paths, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*CareerPath, error) {
	var cp CareerPath
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&cp, id).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID uint) (*CareerPath, error) {
	var cp CareerPath
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		First(&cp, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) Update(ctx context.Context, cp *CareerPath) error {
	return r.db.WithContext(ctx).Save(cp).Error
}
