package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/authz"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/events"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	leaveerrors "github.com/ImaneBelmiloudi/hr-management/internal/leaverequest/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/contextutil"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/datespan"
	"github.com/ImaneBelmiloudi/hr-management/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, actor identity.Actor, statusFilter string) ([]LeaveRequestResponse, error)
	Create(ctx context.Context, actor identity.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Get(ctx context.Context, actor identity.Actor, id uint) (LeaveRequestResponse, error)
	Update(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor identity.Actor, id uint) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, actor identity.Actor, statusFilter string) ([]LeaveRequestResponse, error) {
	scope := authz.ListScope(actor)
	if !actor.IsStaff() && scope == nil {
		return nil, leaveerrors.ErrNoEmployeeProfile
	}

	requests, err := s.repo.FindAll(ctx, scope, statusFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp, nil
}

// Create submits a request owned by the actor. The balance is checked at
// submission time so employees cannot queue more days than they hold;
// the binding check happens again at approval under a row lock.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request", zap.Uint("user_id", actor.UserID))

	employeeID, err := authz.RequireProfile(actor)
	if err != nil {
		s.logger.Warn("create leave request denied", zap.Uint("user_id", actor.UserID))
		return LeaveRequestResponse{}, leaveerrors.ErrNoEmployeeProfile
	}

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	duration := datespan.InclusiveDays(start, end)
	if duration < 1 {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if empl.LeaveBalance < duration {
		s.logger.Warn("create leave request insufficient balance",
			zap.Uint("employee_id", employeeID),
			zap.Int("balance", empl.LeaveBalance),
			zap.Int("requested", duration),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance(empl.LeaveBalance)
	}

	lr := &LeaveRequest{
		EmployeeID: employeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Duration:   duration,
		Reason:     req.Reason,
		Status:     Rules.Initial,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.Uint("leave_request_id", lr.ID),
		zap.Uint("employee_id", employeeID),
		zap.Int("duration", duration),
	)
	lr.Employee = *empl
	return mapToResponse(*lr), nil
}

func (s *service) Get(ctx context.Context, actor identity.Actor, id uint) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if err := authz.CanAct(actor, authz.Request{
		Action:          authz.ActionView,
		OwnerEmployeeID: lr.EmployeeID,
	}); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrViewForbidden
	}
	return mapToResponse(*lr), nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveRequest) (LeaveRequestResponse, error) {
	var updated *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveRequestNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: lr.EmployeeID,
			Pending:         lr.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return leaveerrors.ErrNotPendingUpdate
			}
			s.logger.Warn("update leave request denied",
				zap.Uint("user_id", actor.UserID),
				zap.Uint("leave_request_id", id),
			)
			return leaveerrors.ErrUpdateForbidden
		}

		if req.Type != nil {
			lr.Type = *req.Type
		}
		if req.Reason != nil {
			lr.Reason = *req.Reason
		}

		if req.StartDate != nil || req.EndDate != nil {
			start, end := lr.StartDate, lr.EndDate
			if req.StartDate != nil {
				start, err = time.Parse("2006-01-02", *req.StartDate)
				if err != nil {
					return leaveerrors.ErrInvalidDateRange
				}
			}
			if req.EndDate != nil {
				end, err = time.Parse("2006-01-02", *req.EndDate)
				if err != nil {
					return leaveerrors.ErrInvalidDateRange
				}
			}
			duration := datespan.InclusiveDays(start, end)
			if duration < 1 {
				return leaveerrors.ErrInvalidDateRange
			}

			empl, err := s.employees.WithTx(tx).FindByID(ctx, lr.EmployeeID)
			if err != nil {
				return err
			}
			if duration > empl.LeaveBalance {
				return leaveerrors.ErrInsufficientBalanceUpdate
			}

			lr.StartDate = start
			lr.EndDate = end
			lr.Duration = duration
		}

		if err := qtx.Update(ctx, lr); err != nil {
			s.logger.Error("update leave request persist failed", zap.Error(err))
			return err
		}
		updated = lr
		return nil
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request updated", zap.Uint("leave_request_id", id))
	return mapToResponse(*updated), nil
}

// UpdateStatus runs the decision. Approval and the balance decrement
// commit together; both the request and the employee rows are locked so
// two staff members cannot approve the same request twice.
func (s *service) UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave request status",
		zap.String("request_id", rid),
		zap.Uint("leave_request_id", id),
		zap.String("target", req.Status),
	)

	if err := authz.CanAct(actor, authz.Request{Action: authz.ActionDecide}); err != nil {
		s.logger.Warn("update leave request status denied",
			zap.Uint("user_id", actor.UserID),
			zap.String("role", string(actor.Role)),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrDecideForbidden
	}

	target := Status(req.Status)
	var updated *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveRequestNotFound
			}
			return err
		}

		if err := Rules.Apply(lr.Status, target, req.RejectionReason); err != nil {
			switch {
			case errors.Is(err, workflow.ErrNoteRequired):
				return leaveerrors.ErrRejectionReasonRequired
			default:
				return leaveerrors.ErrNotPendingUpdate
			}
		}

		if target == StatusApproved {
			empl, err := s.employees.WithTx(tx).FindByIDForUpdate(ctx, lr.EmployeeID)
			if err != nil {
				return err
			}
			if empl.LeaveBalance < lr.Duration {
				return leaveerrors.ErrInsufficientBalance(empl.LeaveBalance)
			}
			if err := s.employees.WithTx(tx).AdjustLeaveBalance(ctx, lr.EmployeeID, -lr.Duration); err != nil {
				s.logger.Error("leave balance decrement failed", zap.Error(err))
				return err
			}
		}

		now := time.Now().UTC()
		lr.Status = target
		lr.ProcessedBy = &actor.UserID
		lr.ProcessedAt = &now
		if target == StatusRejected {
			lr.RejectionReason = &req.RejectionReason
		}
		if err := qtx.Update(ctx, lr); err != nil {
			s.logger.Error("update leave request status persist failed", zap.Error(err))
			return err
		}

		if s.outbox != nil {
			event := events.RequestDecidedEvent{
				EventType:  "leave_request_decided",
				RequestID:  rid,
				Entity:     "leave_request",
				EntityID:   lr.ID,
				EmployeeID: lr.EmployeeID,
				Status:     string(target),
				DecidedBy:  actor.UserID,
				OccurredAt: now,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "leave_request",
				AggregateID:   fmt.Sprint(lr.ID),
				EventType:     event.EventType,
				Topic:         events.RequestDecidedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("leave decision outbox persist failed", zap.Error(err))
				return err
			}
		}

		updated = lr
		return nil
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request decided",
		zap.String("request_id", rid),
		zap.Uint("leave_request_id", id),
		zap.String("status", string(target)),
		zap.Uint("decided_by", actor.UserID),
	)
	return mapToResponse(*updated), nil
}

func (s *service) Cancel(ctx context.Context, actor identity.Actor, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveRequestNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: lr.EmployeeID,
			Pending:         lr.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return leaveerrors.ErrNotPendingCancel
			}
			return leaveerrors.ErrCancelForbidden
		}

		return qtx.Delete(ctx, lr.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("leave request cancelled", zap.Uint("leave_request_id", id))
	return nil
}

func parseDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.Employee.User.Name,
		Type:            lr.Type,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		Duration:        lr.Duration,
		Reason:          lr.Reason,
		Status:          string(lr.Status),
		RejectionReason: lr.RejectionReason,
		ProcessedBy:     lr.ProcessedBy,
		CreatedAt:       lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.ProcessedAt != nil {
		v := lr.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}
