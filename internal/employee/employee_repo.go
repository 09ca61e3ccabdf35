package employee

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, roleFilter string) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByUserID(ctx context.Context, userID uint) (*Employee, error)
	// FindByIDForUpdate row-locks the employee so a concurrent approval
	// cannot read a stale balance.
	FindByIDForUpdate(ctx context.Context, id uint) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	AdjustLeaveBalance(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, roleFilter string) ([]Employee, error) {
	var employees []Employee
	q := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = employees.user_id")
	if roleFilter != "" {
		q = q.Where("users.role = ?", roleFilter)
	}
	err := q.Order("employees.created_at DESC").Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Preload("User").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Preload("User").First(&e, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	// The login account is updated through its own repository.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *repository) AdjustLeaveBalance(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		UpdateColumn("leave_balance", gorm.Expr("leave_balance + ?", delta)).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, id).Error
}
