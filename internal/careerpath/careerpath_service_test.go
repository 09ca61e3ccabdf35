package careerpath

import (
	"context"
	"testing"
	"time"

	careerpatherrors "github.com/ImaneBelmiloudi/hr-management/internal/careerpath/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCareerPathRepo struct {
	byID   map[uint]*CareerPath
	nextID uint
}

func newFakeCareerPathRepo(seed ...*CareerPath) *fakeCareerPathRepo {
	r := &fakeCareerPathRepo{byID: map[uint]*CareerPath{}, nextID: 1}
	for _, cp := range seed {
		r.byID[cp.ID] = cp
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *fakeCareerPathRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *fakeCareerPathRepo) Create(ctx context.Context, cp *CareerPath) error {
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.nextID++
	r.byID[cp.ID] = cp
	return nil
}

func (r *fakeCareerPathRepo) FindAll(ctx context.Context) ([]CareerPath, error) {
	var out []CareerPath
	for _, cp := range r.byID {
		out = append(out, *cp)
	}
	return out, nil
}

func (r *fakeCareerPathRepo) FindByID(ctx context.Context, id uint) (*CareerPath, error) {
	cp, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *cp
	return &dup, nil
}

func (r *fakeCareerPathRepo) FindByEmployeeID(ctx context.Context, employeeID uint) (*CareerPath, error) {
	for _, cp := range r.byID {
		if cp.EmployeeID == employeeID {
			dup := *cp
			return &dup, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCareerPathRepo) Update(ctx context.Context, cp *CareerPath) error {
	dup := *cp
	r.byID[cp.ID] = &dup
	return nil
}

type fakeEmployeeRepo struct {
	existing map[uint]bool
}

func (r *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return r }

func (r *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) FindAll(ctx context.Context, roleFilter string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	if r.existing[id] {
		return &employee.Employee{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID uint) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByIDForUpdate(ctx context.Context, id uint) (*employee.Employee, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) AdjustLeaveBalance(ctx context.Context, id uint, delta int) error {
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id uint) error { return nil }

func employeeActor(employeeID uint) identity.Actor {
	return identity.Actor{UserID: 10, Role: identity.RoleEmployee, EmployeeID: &employeeID}
}

var hrActor = identity.Actor{UserID: 99, Role: identity.RoleRH}

func TestCreateCareerPath(t *testing.T) {
	repo := newFakeCareerPathRepo()
	svc := NewService(repo, &fakeEmployeeRepo{existing: map[uint]bool{7: true}})

	promo := "2024-06-01"
	resp, err := svc.Create(context.Background(), CreateCareerPathRequest{
		EmployeeID:      7,
		CurrentPosition: "Developer",
		LastPromotion:   &promo,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.EmployeeID)
	assert.Equal(t, "Developer", resp.CurrentPosition)
	if assert.NotNil(t, resp.LastPromotion) {
		assert.Equal(t, "2024-06-01", *resp.LastPromotion)
	}
}

func TestCreateCareerPathUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeCareerPathRepo(), &fakeEmployeeRepo{})

	_, err := svc.Create(context.Background(), CreateCareerPathRequest{
		EmployeeID:      42,
		CurrentPosition: "Developer",
	})
	assert.ErrorIs(t, err, careerpatherrors.ErrEmployeeNotFound)
}

func TestCreateCareerPathAlreadyExists(t *testing.T) {
	repo := newFakeCareerPathRepo(&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"})
	svc := NewService(repo, &fakeEmployeeRepo{existing: map[uint]bool{7: true}})

	_, err := svc.Create(context.Background(), CreateCareerPathRequest{
		EmployeeID:      7,
		CurrentPosition: "Developer",
	})
	assert.ErrorIs(t, err, careerpatherrors.ErrAlreadyExists)
}

func TestListCareerPathsScopedByRole(t *testing.T) {
	repo := newFakeCareerPathRepo(
		&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"},
		&CareerPath{ID: 2, EmployeeID: 8, CurrentPosition: "Designer"},
	)
	svc := NewService(repo, &fakeEmployeeRepo{})

	all, err := svc.List(context.Background(), hrActor)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(context.Background(), employeeActor(7))
	require.NoError(t, err)
	if assert.Len(t, own, 1) {
		assert.Equal(t, uint(7), own[0].EmployeeID)
	}

	// An employee without a path gets an empty list, not an error.
	none, err := svc.List(context.Background(), employeeActor(9))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListCareerPathsWithoutProfile(t *testing.T) {
	repo := newFakeCareerPathRepo(
		&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"},
		&CareerPath{ID: 2, EmployeeID: 8, CurrentPosition: "Designer"},
	)
	svc := NewService(repo, &fakeEmployeeRepo{})

	// Registered account with no provisioned employee profile.
	actor := identity.Actor{UserID: 10, Role: identity.RoleEmployee}
	paths, err := svc.List(context.Background(), actor)

	assert.ErrorIs(t, err, careerpatherrors.ErrNoEmployeeProfile)
	assert.Nil(t, paths)
}

func TestGetCareerPathOwnership(t *testing.T) {
	repo := newFakeCareerPathRepo(&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"})
	svc := NewService(repo, &fakeEmployeeRepo{})

	_, err := svc.Get(context.Background(), employeeActor(7), 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), employeeActor(8), 1)
	assert.ErrorIs(t, err, careerpatherrors.ErrViewForbidden)

	_, err = svc.Get(context.Background(), hrActor, 42)
	assert.ErrorIs(t, err, careerpatherrors.ErrCareerPathNotFound)
}

func TestGetForEmployee(t *testing.T) {
	repo := newFakeCareerPathRepo(&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"})
	employees := &fakeEmployeeRepo{existing: map[uint]bool{7: true, 8: true}}
	svc := NewService(repo, employees)

	resp, err := svc.GetForEmployee(context.Background(), hrActor, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)

	_, err = svc.GetForEmployee(context.Background(), hrActor, 8)
	assert.ErrorIs(t, err, careerpatherrors.ErrNoneForEmployee)

	_, err = svc.GetForEmployee(context.Background(), hrActor, 42)
	assert.ErrorIs(t, err, careerpatherrors.ErrEmployeeNotFound)

	_, err = svc.GetForEmployee(context.Background(), employeeActor(8), 7)
	assert.ErrorIs(t, err, careerpatherrors.ErrViewForbidden)
}

func TestUpdateCareerPath(t *testing.T) {
	repo := newFakeCareerPathRepo(&CareerPath{ID: 1, EmployeeID: 7, CurrentPosition: "Developer"})
	svc := NewService(repo, &fakeEmployeeRepo{})

	position := "Senior Developer"
	review := "2026-01-15"
	resp, err := svc.Update(context.Background(), 1, UpdateCareerPathRequest{
		CurrentPosition: &position,
		NextReview:      &review,
	})

	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", resp.CurrentPosition)
	if assert.NotNil(t, resp.NextReview) {
		assert.Equal(t, "2026-01-15", *resp.NextReview)
	}
	assert.Equal(t, "Senior Developer", repo.byID[1].CurrentPosition)
}

func TestUpdateCareerPathNotFound(t *testing.T) {
	svc := NewService(newFakeCareerPathRepo(), &fakeEmployeeRepo{})

	position := "Lead"
	_, err := svc.Update(context.Background(), 42, UpdateCareerPathRequest{
		CurrentPosition: &position,
	})
	assert.ErrorIs(t, err, careerpatherrors.ErrCareerPathNotFound)
}
