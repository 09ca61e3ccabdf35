package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/ImaneBelmiloudi/hr-management/internal/employee/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/events"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/contextutil"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/counter"
	"github.com/ImaneBelmiloudi/hr-management/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultLeaveBalance = 30
	defaultPassword     = "ChangeMe123!"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, roleFilter string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	users   user.Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		counter: counterRepo,
		outbox:  outboxRepo,
		logger:  l,
	}
}

// Create provisions the login account and the employee profile in one
// transaction and queues the employee_created event with them.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	hireDate := time.Now().UTC()
	if req.HireDate != "" {
		parsed, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		hireDate = parsed
	}

	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = string(identity.RoleEmployee)
	}

	balance := defaultLeaveBalance
	if req.LeaveBalance != nil {
		balance = *req.LeaveBalance
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	var created *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code := req.EmployeeCode
		if code == "" {
			nextVal, err := s.counter.GetNextValue(ctx, "employee_code")
			if err != nil {
				s.logger.Error("create employee generate code failed", zap.Error(err))
				return err
			}
			code = fmt.Sprintf("EMP-%06d", nextVal)
		}

		account := &user.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hashed),
			Role:     role,
		}
		if err := s.users.WithTx(tx).Create(ctx, account); err != nil {
			return mapUniqueViolation(err)
		}

		empl := &Employee{
			UserID:       account.ID,
			Position:     req.Position,
			Department:   req.Department,
			EmployeeCode: code,
			HireDate:     hireDate,
			LeaveBalance: balance,
			Status:       status,
			Grade:        req.Grade,
		}
		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			return mapUniqueViolation(err)
		}
		empl.User = *account
		created = empl

		if s.outbox != nil {
			event := events.EmployeeCreatedEvent{
				EventType:  "employee_created",
				RequestID:  rid,
				EmployeeID: empl.ID,
				UserID:     account.ID,
				Department: empl.Department,
				OccurredAt: time.Now().UTC(),
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "employee",
				AggregateID:   fmt.Sprint(empl.ID),
				EventType:     event.EventType,
				Topic:         events.EmployeeCreatedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("create employee outbox persist failed", zap.Error(err))
				return err
			}
		}

		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", created.ID),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, roleFilter string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, roleFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	var updated *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		e, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}

		if req.Position != nil {
			e.Position = *req.Position
		}
		if req.Department != nil {
			e.Department = *req.Department
		}
		if req.EmployeeCode != nil {
			e.EmployeeCode = *req.EmployeeCode
		}
		if req.HireDate != nil {
			parsed, err := time.Parse("2006-01-02", *req.HireDate)
			if err != nil {
				return employeeerrors.ErrInvalidHireDate
			}
			e.HireDate = parsed
		}
		if req.LeaveBalance != nil {
			e.LeaveBalance = *req.LeaveBalance
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		if req.Grade != nil {
			e.Grade = req.Grade
		}

		if err := qtx.Update(ctx, e); err != nil {
			return mapUniqueViolation(err)
		}

		if req.Name != nil || req.Email != nil {
			account, err := s.users.WithTx(tx).FindByID(ctx, e.UserID)
			if err != nil {
				return err
			}
			if req.Name != nil {
				account.Name = *req.Name
			}
			if req.Email != nil {
				account.Email = *req.Email
			}
			if err := s.users.WithTx(tx).Update(ctx, account); err != nil {
				return mapUniqueViolation(err)
			}
			e.User = *account
		}

		updated = e
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.Uint("employee_id", id))
	return mapToResponse(*updated), nil
}

// Delete removes the profile and the login account. Owned requests and
// the career path go with it through the foreign key cascades.
func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		e, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}
		if err := qtx.Delete(ctx, e.ID); err != nil {
			return err
		}
		return s.users.WithTx(tx).Delete(ctx, e.UserID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("delete employee success", zap.Uint("employee_id", id))
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "employee_code") {
			return employeeerrors.ErrEmployeeCodeAlreadyUsed
		}
		return employeeerrors.ErrEmailAlreadyUsed
	}
	return err
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Name:         e.User.Name,
		Email:        e.User.Email,
		Role:         e.User.Role,
		Position:     e.Position,
		Department:   e.Department,
		EmployeeCode: e.EmployeeCode,
		HireDate:     e.HireDate.Format("2006-01-02"),
		LeaveBalance: e.LeaveBalance,
		Status:       e.Status,
		Grade:        e.Grade,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
