package absence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	absenceerrors "github.com/ImaneBelmiloudi/hr-management/internal/absence/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/authz"
	"github.com/ImaneBelmiloudi/hr-management/internal/events"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/blob"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/contextutil"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/datespan"
	"github.com/ImaneBelmiloudi/hr-management/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const documentDir = "absence-documents"

type Service interface {
	List(ctx context.Context, actor identity.Actor, statusFilter string) ([]AbsenceResponse, error)
	Create(ctx context.Context, actor identity.Actor, req CreateAbsenceRequest, doc *DocumentUpload) (AbsenceResponse, error)
	Get(ctx context.Context, actor identity.Actor, id uint) (AbsenceResponse, error)
	Update(ctx context.Context, actor identity.Actor, id uint, req UpdateAbsenceRequest, doc *DocumentUpload) (AbsenceResponse, error)
	UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateAbsenceStatusRequest) (AbsenceResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id uint) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	blobs  blob.Storage
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	blobs blob.Storage,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		blobs:  blobs,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) List(ctx context.Context, actor identity.Actor, statusFilter string) ([]AbsenceResponse, error) {
	scope := authz.ListScope(actor)
	if !actor.IsStaff() && scope == nil {
		return nil, absenceerrors.ErrNoEmployeeProfile
	}

	justifications, err := s.repo.FindAll(ctx, scope, statusFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]AbsenceResponse, len(justifications))
	for i, aj := range justifications {
		resp[i] = s.mapToResponse(aj)
	}
	return resp, nil
}

// Create stores the document before the row so a failed write cannot
// leave a row pointing at nothing. A failed row write may orphan a file;
// that is accepted.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateAbsenceRequest, doc *DocumentUpload) (AbsenceResponse, error) {
	s.logger.Debug("create absence justification", zap.Uint("user_id", actor.UserID))

	employeeID, err := authz.RequireProfile(actor)
	if err != nil {
		s.logger.Warn("create absence justification denied", zap.Uint("user_id", actor.UserID))
		return AbsenceResponse{}, absenceerrors.ErrNoEmployeeProfile
	}

	absenceDate, err := time.Parse("2006-01-02", req.AbsenceDate)
	if err != nil {
		return AbsenceResponse{}, absenceerrors.ErrInvalidDate
	}

	var documentPath *string
	if doc != nil {
		path, err := s.blobs.Store(ctx, documentDir, doc.Filename, doc.Content)
		if err != nil {
			s.logger.Error("absence document store failed", zap.Error(err))
			return AbsenceResponse{}, absenceerrors.ErrDocumentStoreFailed
		}
		documentPath = &path
	}

	aj := &AbsenceJustification{
		EmployeeID:   employeeID,
		AbsenceDate:  absenceDate,
		Duration:     req.Duration,
		Type:         req.Type,
		Reason:       req.Reason,
		DocumentPath: documentPath,
		Status:       Rules.Initial,
	}
	if err := s.repo.Create(ctx, aj); err != nil {
		s.logger.Error("create absence justification persist failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("absence justification created",
		zap.Uint("justification_id", aj.ID),
		zap.Uint("employee_id", employeeID),
	)
	return s.mapToResponse(*aj), nil
}

func (s *service) Get(ctx context.Context, actor identity.Actor, id uint) (AbsenceResponse, error) {
	aj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrJustificationNotFound
		}
		return AbsenceResponse{}, err
	}

	if err := authz.CanAct(actor, authz.Request{
		Action:          authz.ActionView,
		OwnerEmployeeID: aj.EmployeeID,
	}); err != nil {
		return AbsenceResponse{}, absenceerrors.ErrViewForbidden
	}
	return s.mapToResponse(*aj), nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id uint, req UpdateAbsenceRequest, doc *DocumentUpload) (AbsenceResponse, error) {
	var updated *AbsenceJustification
	var replacedPath string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		aj, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return absenceerrors.ErrJustificationNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: aj.EmployeeID,
			Pending:         aj.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return absenceerrors.ErrNotPendingUpdate
			}
			s.logger.Warn("update absence justification denied",
				zap.Uint("user_id", actor.UserID),
				zap.Uint("justification_id", id),
			)
			return absenceerrors.ErrUpdateForbidden
		}

		if req.AbsenceDate != nil {
			parsed, err := time.Parse("2006-01-02", *req.AbsenceDate)
			if err != nil {
				return absenceerrors.ErrInvalidDate
			}
			aj.AbsenceDate = parsed
		}
		if req.Duration != nil {
			aj.Duration = *req.Duration
		}
		if req.Type != nil {
			aj.Type = *req.Type
		}
		if req.Reason != nil {
			aj.Reason = *req.Reason
		}

		if doc != nil {
			path, err := s.blobs.Store(ctx, documentDir, doc.Filename, doc.Content)
			if err != nil {
				s.logger.Error("absence document store failed", zap.Error(err))
				return absenceerrors.ErrDocumentStoreFailed
			}
			if aj.DocumentPath != nil {
				replacedPath = *aj.DocumentPath
			}
			aj.DocumentPath = &path
		}

		if err := qtx.Update(ctx, aj); err != nil {
			s.logger.Error("update absence justification persist failed", zap.Error(err))
			return err
		}
		updated = aj
		return nil
	})
	if err != nil {
		return AbsenceResponse{}, err
	}

	// The old file goes only after the row committed with the new path.
	if replacedPath != "" {
		if err := s.blobs.Delete(ctx, replacedPath); err != nil {
			s.logger.Warn("old absence document cleanup failed",
				zap.String("path", replacedPath), zap.Error(err))
		}
	}

	s.logger.Info("absence justification updated", zap.Uint("justification_id", id))
	return s.mapToResponse(*updated), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateAbsenceStatusRequest) (AbsenceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update absence justification status",
		zap.String("request_id", rid),
		zap.Uint("justification_id", id),
		zap.String("target", req.Status),
	)

	if err := authz.CanAct(actor, authz.Request{Action: authz.ActionDecide}); err != nil {
		s.logger.Warn("update absence justification status denied",
			zap.Uint("user_id", actor.UserID),
			zap.String("role", string(actor.Role)),
		)
		return AbsenceResponse{}, absenceerrors.ErrDecideForbidden
	}

	target := Status(req.Status)
	var updated *AbsenceJustification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		aj, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return absenceerrors.ErrJustificationNotFound
			}
			return err
		}

		if err := Rules.Apply(aj.Status, target, req.RejectionReason); err != nil {
			if errors.Is(err, workflow.ErrNoteRequired) {
				return absenceerrors.ErrRejectionReasonRequired
			}
			return absenceerrors.ErrNotPendingUpdate
		}

		now := time.Now().UTC()
		aj.Status = target
		aj.ProcessedBy = &actor.UserID
		aj.ProcessedAt = &now
		if target == StatusRejected {
			aj.RejectionReason = &req.RejectionReason
		}
		if err := qtx.Update(ctx, aj); err != nil {
			s.logger.Error("update absence justification status persist failed", zap.Error(err))
			return err
		}

		if s.outbox != nil {
			event := events.RequestDecidedEvent{
				EventType:  "absence_justification_decided",
				RequestID:  rid,
				Entity:     "absence_justification",
				EntityID:   aj.ID,
				EmployeeID: aj.EmployeeID,
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
				AggregateType: "absence_justification",
				AggregateID:   fmt.Sprint(aj.ID),
				EventType:     event.EventType,
				Topic:         events.RequestDecidedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("absence decision outbox persist failed", zap.Error(err))
				return err
			}
		}

		updated = aj
		return nil
	})
	if err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("absence justification decided",
		zap.String("request_id", rid),
		zap.Uint("justification_id", id),
		zap.String("status", string(target)),
		zap.Uint("decided_by", actor.UserID),
	)
	return s.mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id uint) error {
	var documentPath string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		aj, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return absenceerrors.ErrJustificationNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: aj.EmployeeID,
			Pending:         aj.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return absenceerrors.ErrNotPendingDelete
			}
			return absenceerrors.ErrDeleteForbidden
		}

		if aj.DocumentPath != nil {
			documentPath = *aj.DocumentPath
		}
		return qtx.Delete(ctx, aj.ID)
	})
	if err != nil {
		return err
	}

	if documentPath != "" {
		if err := s.blobs.Delete(ctx, documentPath); err != nil {
			s.logger.Warn("absence document cleanup failed",
				zap.String("path", documentPath), zap.Error(err))
		}
	}

	s.logger.Info("absence justification deleted", zap.Uint("justification_id", id))
	return nil
}

func (s *service) mapToResponse(aj AbsenceJustification) AbsenceResponse {
	start := aj.AbsenceDate.Format("2006-01-02")
	resp := AbsenceResponse{
		ID:              aj.ID,
		EmployeeID:      aj.EmployeeID,
		EmployeeName:    aj.Employee.User.Name,
		AbsenceDate:     start,
		StartDate:       start,
		EndDate:         datespan.EndDate(aj.AbsenceDate, aj.Duration).Format("2006-01-02"),
		Duration:        aj.Duration,
		Type:            aj.Type,
		Reason:          aj.Reason,
		Status:          string(aj.Status),
		RejectionReason: aj.RejectionReason,
		ProcessedBy:     aj.ProcessedBy,
		CreatedAt:       aj.CreatedAt.Format(time.RFC3339),
	}
	if aj.DocumentPath != nil && s.blobs != nil {
		url := s.blobs.URL(*aj.DocumentPath)
		resp.DocumentURL = &url
	}
	if aj.ProcessedAt != nil {
		v := aj.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}
