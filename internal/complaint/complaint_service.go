package complaint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/authz"
	complainterrors "github.com/ImaneBelmiloudi/hr-management/internal/complaint/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/events"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/blob"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/contextutil"
	"github.com/ImaneBelmiloudi/hr-management/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const attachmentDir = "complaint-attachments"

type Service interface {
	List(ctx context.Context, actor identity.Actor, statusFilter string) ([]ComplaintResponse, error)
	Create(ctx context.Context, actor identity.Actor, req CreateComplaintRequest, att *AttachmentUpload) (ComplaintResponse, error)
	Get(ctx context.Context, actor identity.Actor, id uint) (ComplaintResponse, error)
	Update(ctx context.Context, actor identity.Actor, id uint, req UpdateComplaintRequest, att *AttachmentUpload) (ComplaintResponse, error)
	UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateComplaintStatusRequest) (ComplaintResponse, error)
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
	l := zap.L().Named("complaint.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("complaint.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		blobs:  blobs,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) List(ctx context.Context, actor identity.Actor, statusFilter string) ([]ComplaintResponse, error) {
	scope := authz.ListScope(actor)
	if !actor.IsStaff() && scope == nil {
		return nil, complainterrors.ErrNoEmployeeProfile
	}

	complaints, err := s.repo.FindAll(ctx, scope, statusFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]ComplaintResponse, len(complaints))
	for i, cp := range complaints {
		resp[i] = s.mapToResponse(cp)
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateComplaintRequest, att *AttachmentUpload) (ComplaintResponse, error) {
	s.logger.Debug("create complaint", zap.Uint("user_id", actor.UserID))

	employeeID, err := authz.RequireProfile(actor)
	if err != nil {
		s.logger.Warn("create complaint denied", zap.Uint("user_id", actor.UserID))
		return ComplaintResponse{}, complainterrors.ErrNoEmployeeProfile
	}

	var attachmentPath *string
	if att != nil {
		path, err := s.blobs.Store(ctx, attachmentDir, att.Filename, att.Content)
		if err != nil {
			s.logger.Error("complaint attachment store failed", zap.Error(err))
			return ComplaintResponse{}, complainterrors.ErrAttachmentStoreFailed
		}
		attachmentPath = &path
	}

	cp := &Complaint{
		EmployeeID:     employeeID,
		Subject:        req.Subject,
		Description:    req.Description,
		AttachmentPath: attachmentPath,
		Status:         Rules.Initial,
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		s.logger.Error("create complaint persist failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	s.logger.Info("complaint created",
		zap.Uint("complaint_id", cp.ID),
		zap.Uint("employee_id", employeeID),
	)
	return s.mapToResponse(*cp), nil
}

func (s *service) Get(ctx context.Context, actor identity.Actor, id uint) (ComplaintResponse, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComplaintResponse{}, complainterrors.ErrComplaintNotFound
		}
		return ComplaintResponse{}, err
	}

	if err := authz.CanAct(actor, authz.Request{
		Action:          authz.ActionView,
		OwnerEmployeeID: cp.EmployeeID,
	}); err != nil {
		return ComplaintResponse{}, complainterrors.ErrViewForbidden
	}
	return s.mapToResponse(*cp), nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id uint, req UpdateComplaintRequest, att *AttachmentUpload) (ComplaintResponse, error) {
	var updated *Complaint
	var replacedPath string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		cp, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return complainterrors.ErrComplaintNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: cp.EmployeeID,
			Pending:         cp.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return complainterrors.ErrNotPendingUpdate
			}
			s.logger.Warn("update complaint denied",
				zap.Uint("user_id", actor.UserID),
				zap.Uint("complaint_id", id),
			)
			return complainterrors.ErrUpdateForbidden
		}

		if req.Subject != nil {
			cp.Subject = *req.Subject
		}
		if req.Description != nil {
			cp.Description = *req.Description
		}

		if att != nil {
			path, err := s.blobs.Store(ctx, attachmentDir, att.Filename, att.Content)
			if err != nil {
				s.logger.Error("complaint attachment store failed", zap.Error(err))
				return complainterrors.ErrAttachmentStoreFailed
			}
			if cp.AttachmentPath != nil {
				replacedPath = *cp.AttachmentPath
			}
			cp.AttachmentPath = &path
		}

		if err := qtx.Update(ctx, cp); err != nil {
			s.logger.Error("update complaint persist failed", zap.Error(err))
			return err
		}
		updated = cp
		return nil
	})
	if err != nil {
		return ComplaintResponse{}, err
	}

	if replacedPath != "" {
		if err := s.blobs.Delete(ctx, replacedPath); err != nil {
			s.logger.Warn("old complaint attachment cleanup failed",
				zap.String("path", replacedPath), zap.Error(err))
		}
	}

	s.logger.Info("complaint updated", zap.Uint("complaint_id", id))
	return s.mapToResponse(*updated), nil
}

// UpdateStatus moves the complaint through its machine. handled_by and
// resolved_at are stamped only when the complaint reaches a terminal
// state; an in_review step leaves both empty.
func (s *service) UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateComplaintStatusRequest) (ComplaintResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update complaint status",
		zap.String("request_id", rid),
		zap.Uint("complaint_id", id),
		zap.String("target", req.Status),
	)

	if err := authz.CanAct(actor, authz.Request{Action: authz.ActionDecide}); err != nil {
		s.logger.Warn("update complaint status denied",
			zap.Uint("user_id", actor.UserID),
			zap.String("role", string(actor.Role)),
		)
		return ComplaintResponse{}, complainterrors.ErrDecideForbidden
	}

	target := Status(req.Status)
	var updated *Complaint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		cp, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return complainterrors.ErrComplaintNotFound
			}
			return err
		}

		if err := Rules.Apply(cp.Status, target, req.ResolutionDetails); err != nil {
			if errors.Is(err, workflow.ErrNoteRequired) {
				return complainterrors.ErrResolutionDetailsRequired
			}
			return complainterrors.ErrInvalidTransition
		}

		cp.Status = target
		if Rules.Terminal(target) {
			now := time.Now().UTC()
			cp.ResolutionDetails = &req.ResolutionDetails
			cp.HandledBy = &actor.UserID
			cp.ResolvedAt = &now
		}
		if err := qtx.Update(ctx, cp); err != nil {
			s.logger.Error("update complaint status persist failed", zap.Error(err))
			return err
		}

		if s.outbox != nil && Rules.Terminal(target) {
			event := events.RequestDecidedEvent{
				EventType:  "complaint_decided",
				RequestID:  rid,
				Entity:     "complaint",
				EntityID:   cp.ID,
				EmployeeID: cp.EmployeeID,
				Status:     string(target),
				DecidedBy:  actor.UserID,
				OccurredAt: time.Now().UTC(),
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "complaint",
				AggregateID:   fmt.Sprint(cp.ID),
				EventType:     event.EventType,
				Topic:         events.RequestDecidedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("complaint decision outbox persist failed", zap.Error(err))
				return err
			}
		}

		updated = cp
		return nil
	})
	if err != nil {
		return ComplaintResponse{}, err
	}

	s.logger.Info("complaint status updated",
		zap.String("request_id", rid),
		zap.Uint("complaint_id", id),
		zap.String("status", string(target)),
	)
	return s.mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id uint) error {
	var attachmentPath string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		cp, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return complainterrors.ErrComplaintNotFound
			}
			return err
		}

		if err := authz.CanAct(actor, authz.Request{
			Action:          authz.ActionModify,
			OwnerEmployeeID: cp.EmployeeID,
			Pending:         cp.Status == StatusPending,
		}); err != nil {
			if errors.Is(err, authz.DenyNotPending) {
				return complainterrors.ErrNotPendingDelete
			}
			return complainterrors.ErrDeleteForbidden
		}

		if cp.AttachmentPath != nil {
			attachmentPath = *cp.AttachmentPath
		}
		return qtx.Delete(ctx, cp.ID)
	})
	if err != nil {
		return err
	}

	if attachmentPath != "" {
		if err := s.blobs.Delete(ctx, attachmentPath); err != nil {
			s.logger.Warn("complaint attachment cleanup failed",
				zap.String("path", attachmentPath), zap.Error(err))
		}
	}

	s.logger.Info("complaint deleted", zap.Uint("complaint_id", id))
	return nil
}

func (s *service) mapToResponse(cp Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:                cp.ID,
		EmployeeID:        cp.EmployeeID,
		EmployeeName:      cp.Employee.User.Name,
		Subject:           cp.Subject,
		Description:       cp.Description,
		Status:            string(cp.Status),
		ResolutionDetails: cp.ResolutionDetails,
		HandledBy:         cp.HandledBy,
		CreatedAt:         cp.CreatedAt.Format(time.RFC3339),
	}
	if cp.AttachmentPath != nil && s.blobs != nil {
		url := s.blobs.URL(*cp.AttachmentPath)
		resp.AttachmentURL = &url
	}
	if cp.ResolvedAt != nil {
		v := cp.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}
