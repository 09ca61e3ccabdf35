package auth

import (
	"context"
	"testing"
	"time"

	autherrors "github.com/ImaneBelmiloudi/hr-management/internal/auth/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID      map[uint]*user.User
	nextID    uint
	createErr error
}

func newFakeUserRepo(seed ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[uint]*user.User{}, nextID: 1}
	for _, u := range seed {
		r.byID[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) user.Repository { return r }

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *u
	return &dup, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			dup := *u
			return &dup, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	dup := *u
	r.byID[u.ID] = &dup
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(r.byID, id)
	return nil
}

type fakeEmployeeRepo struct {
	byUserID map[uint]*employee.Employee
}

func (r *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return r }

func (r *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) FindAll(ctx context.Context, roleFilter string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID uint) (*employee.Employee, error) {
	if e, ok := r.byUserID[userID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByIDForUpdate(ctx context.Context, id uint) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) AdjustLeaveBalance(ctx context.Context, id uint, delta int) error {
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id uint) error { return nil }

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewService(users, &fakeEmployeeRepo{}, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Omar Haddad",
		Email:    "omar@example.com",
		Password: "secret-pass-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "employee", resp.Role)

	stored := users.byID[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-pass-1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret-pass-1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	svc := NewService(users, &fakeEmployeeRepo{}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "secret-pass-1",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo(&user.User{
		ID: 5, Name: "Omar", Email: "omar@example.com",
		Password: hashPassword(t, "secret-pass-1"), Role: "employee",
	})
	employees := &fakeEmployeeRepo{byUserID: map[uint]*employee.Employee{
		5: {ID: 7, UserID: 5},
	}}
	svc := NewService(users, employees, nil)

	resp, err := svc.Login(context.Background(), "omar@example.com", "secret-pass-1")

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.EmployeeID)
	assert.Equal(t, uint(7), *resp.User.EmployeeID)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(5), claims["user_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, float64(7), claims["employee_id"])
	assert.NotEmpty(t, claims["jti"])
}

func TestLoginWithoutProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo(&user.User{
		ID: 5, Email: "admin@example.com",
		Password: hashPassword(t, "secret-pass-1"), Role: "admin",
	})
	svc := NewService(users, &fakeEmployeeRepo{}, nil)

	resp, err := svc.Login(context.Background(), "admin@example.com", "secret-pass-1")

	require.NoError(t, err)
	assert.Nil(t, resp.User.EmployeeID)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	_, hasEmployeeID := token.Claims.(jwt.MapClaims)["employee_id"]
	assert.False(t, hasEmployeeID)
}

func TestLoginBadCredentials(t *testing.T) {
	users := newFakeUserRepo(&user.User{
		ID: 5, Email: "omar@example.com",
		Password: hashPassword(t, "secret-pass-1"), Role: "employee",
	})
	svc := NewService(users, &fakeEmployeeRepo{}, nil)

	_, err := svc.Login(context.Background(), "omar@example.com", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret-pass-1")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.CustomMatch(func(expected, actual []interface{}) error {
		return nil
	}).ExpectSet("auth:denylist:token-123", "revoked", time.Hour).SetVal("OK")

	svc := NewService(newFakeUserRepo(), &fakeEmployeeRepo{}, rdb)

	err := svc.Logout(context.Background(), "token-123", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutExpiredTokenIsNoop(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(newFakeUserRepo(), &fakeEmployeeRepo{}, rdb)

	err := svc.Logout(context.Background(), "token-123", time.Now().Add(-time.Minute).Unix())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword(t *testing.T) {
	users := newFakeUserRepo(&user.User{
		ID: 5, Password: hashPassword(t, "old-password-1"),
	})
	svc := NewService(users, &fakeEmployeeRepo{}, nil)
	actor := identity.Actor{UserID: 5, Role: identity.RoleEmployee}

	err := svc.UpdatePassword(context.Background(), actor, UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, autherrors.ErrWrongPassword)

	err = svc.UpdatePassword(context.Background(), actor, UpdatePasswordRequest{
		CurrentPassword: "old-password-1",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.byID[5].Password), []byte("new-password-1")))
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUserRepo(&user.User{
		ID: 5, Name: "Old", Email: "old@example.com", Role: "employee",
	})
	svc := NewService(users, &fakeEmployeeRepo{}, nil)
	actor := identity.Actor{UserID: 5, Role: identity.RoleEmployee}

	name := "New Name"
	resp, err := svc.UpdateProfile(context.Background(), actor, UpdateProfileRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, "New Name", users.byID[5].Name)
}

func TestGetMeUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeEmployeeRepo{}, nil)

	_, err := svc.GetMe(context.Background(), identity.Actor{UserID: 42, Role: identity.RoleEmployee})
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
