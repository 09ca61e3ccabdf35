package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/ImaneBelmiloudi/hr-management/internal/auth/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, jti string, expiresAt int64) error
	GetMe(ctx context.Context, actor identity.Actor) (AuthResponse, error)
	UpdateProfile(ctx context.Context, actor identity.Actor, req UpdateProfileRequest) (AuthResponse, error)
	UpdatePassword(ctx context.Context, actor identity.Actor, req UpdatePasswordRequest) error
}

type service struct {
	users     user.Repository
	employees employee.Repository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	users user.Repository,
	employees employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, employees: employees, rdb: rdb, logger: l}
}

// Register creates a bare employee-role account. The employee profile is
// provisioned separately by an administrator.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     string(identity.RoleEmployee),
	}
	if err := s.users.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", u.ID))
	return AuthResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	var employeeID *uint
	if e, err := s.employees.FindByUserID(ctx, u.ID); err == nil {
		employeeID = &e.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResponse{}, err
	}

	token, err := generateToken(u.ID, u.Role, employeeID, tokenTTL)
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return LoginResponse{
		Token: token,
		User: AuthResponse{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       u.Role,
			EmployeeID: employeeID,
		},
	}, nil
}

func (s *service) Logout(ctx context.Context, jti string, expiresAt int64) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(time.Unix(expiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, "auth:denylist:"+jti, "revoked", ttl).Err()
}

func (s *service) GetMe(ctx context.Context, actor identity.Actor) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return AuthResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: actor.EmployeeID,
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, actor identity.Actor, req UpdateProfileRequest) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}

	if err := s.users.Update(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	return AuthResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: actor.EmployeeID,
	}, nil
}

func (s *service) UpdatePassword(ctx context.Context, actor identity.Actor, req UpdatePasswordRequest) error {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("password updated", zap.Uint("user_id", u.ID))
	return nil
}

func generateToken(userID uint, role string, employeeID *uint, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(expiry).Unix(),
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
