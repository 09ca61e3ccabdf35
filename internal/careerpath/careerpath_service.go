package careerpath

import (
	"context"
	"errors"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/authz"
	careerpatherrors "github.com/ImaneBelmiloudi/hr-management/internal/careerpath/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// List returns every path for staff; employees get at most their own.
	List(ctx context.Context, actor identity.Actor) ([]CareerPathResponse, error)
	Create(ctx context.Context, req CreateCareerPathRequest) (CareerPathResponse, error)
	Get(ctx context.Context, actor identity.Actor, id uint) (CareerPathResponse, error)
	GetForEmployee(ctx context.Context, actor identity.Actor, employeeID uint) (CareerPathResponse, error)
	Update(ctx context.Context, id uint, req UpdateCareerPathRequest) (CareerPathResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("careerpath.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("careerpath.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) List(ctx context.Context, actor identity.Actor) ([]CareerPathResponse, error) {
	scope := authz.ListScope(actor)
	if !actor.IsStaff() && scope == nil {
		return nil, careerpatherrors.ErrNoEmployeeProfile
	}
	if scope == nil {
		paths, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]CareerPathResponse, len(paths))
		for i, cp := range paths {
			resp[i] = mapToResponse(cp)
		}
		return resp, nil
	}

	cp, err := s.repo.FindByEmployeeID(ctx, *scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CareerPathResponse{}, nil
		}
		return nil, err
	}
	return []CareerPathResponse{mapToResponse(*cp)}, nil
}

// Create enforces one path per employee. The existence check covers the
// common case; the unique index catches the race and maps to the same
// error.
func (s *service) Create(ctx context.Context, req CreateCareerPathRequest) (CareerPathResponse, error) {
	s.logger.Debug("create career path", zap.Uint("employee_id", req.EmployeeID))

	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CareerPathResponse{}, careerpatherrors.ErrEmployeeNotFound
		}
		return CareerPathResponse{}, err
	}

	if _, err := s.repo.FindByEmployeeID(ctx, req.EmployeeID); err == nil {
		return CareerPathResponse{}, careerpatherrors.ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CareerPathResponse{}, err
	}

	cp := &CareerPath{
		EmployeeID:      req.EmployeeID,
		CurrentPosition: req.CurrentPosition,
		TargetPosition:  req.TargetPosition,
		SkillsToDevelop: req.SkillsToDevelop,
		Achievements:    req.Achievements,
	}
	if err := setDate(&cp.LastPromotion, req.LastPromotion); err != nil {
		return CareerPathResponse{}, err
	}
	if err := setDate(&cp.NextReview, req.NextReview); err != nil {
		return CareerPathResponse{}, err
	}

	if err := s.repo.Create(ctx, cp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CareerPathResponse{}, careerpatherrors.ErrAlreadyExists
		}
		s.logger.Error("create career path persist failed", zap.Error(err))
		return CareerPathResponse{}, err
	}

	s.logger.Info("career path created",
		zap.Uint("career_path_id", cp.ID),
		zap.Uint("employee_id", cp.EmployeeID),
	)
	return mapToResponse(*cp), nil
}

func (s *service) Get(ctx context.Context, actor identity.Actor, id uint) (CareerPathResponse, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CareerPathResponse{}, careerpatherrors.ErrCareerPathNotFound
		}
		return CareerPathResponse{}, err
	}

	if err := authz.CanAct(actor, authz.Request{
		Action:          authz.ActionView,
		OwnerEmployeeID: cp.EmployeeID,
	}); err != nil {
		return CareerPathResponse{}, careerpatherrors.ErrViewForbidden
	}
	return mapToResponse(*cp), nil
}

func (s *service) GetForEmployee(ctx context.Context, actor identity.Actor, employeeID uint) (CareerPathResponse, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CareerPathResponse{}, careerpatherrors.ErrEmployeeNotFound
		}
		return CareerPathResponse{}, err
	}

	if err := authz.CanAct(actor, authz.Request{
		Action:          authz.ActionView,
		OwnerEmployeeID: employeeID,
	}); err != nil {
		return CareerPathResponse{}, careerpatherrors.ErrViewForbidden
	}

	cp, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CareerPathResponse{}, careerpatherrors.ErrNoneForEmployee
		}
		return CareerPathResponse{}, err
	}
	return mapToResponse(*cp), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateCareerPathRequest) (CareerPathResponse, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CareerPathResponse{}, careerpatherrors.ErrCareerPathNotFound
		}
		return CareerPathResponse{}, err
	}

	if req.CurrentPosition != nil {
		cp.CurrentPosition = *req.CurrentPosition
	}
	if req.TargetPosition != nil {
		cp.TargetPosition = req.TargetPosition
	}
	if req.SkillsToDevelop != nil {
		cp.SkillsToDevelop = req.SkillsToDevelop
	}
	if req.Achievements != nil {
		cp.Achievements = req.Achievements
	}
	if err := setDate(&cp.LastPromotion, req.LastPromotion); err != nil {
		return CareerPathResponse{}, err
	}
	if err := setDate(&cp.NextReview, req.NextReview); err != nil {
		return CareerPathResponse{}, err
	}

	if err := s.repo.Update(ctx, cp); err != nil {
		s.logger.Error("update career path persist failed", zap.Error(err))
		return CareerPathResponse{}, err
	}

	s.logger.Info("career path updated", zap.Uint("career_path_id", id))
	return mapToResponse(*cp), nil
}

func setDate(dst **time.Time, src *string) error {
	if src == nil {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", *src)
	if err != nil {
		return careerpatherrors.ErrInvalidDate
	}
	*dst = &parsed
	return nil
}

func mapToResponse(cp CareerPath) CareerPathResponse {
	resp := CareerPathResponse{
		ID:              cp.ID,
		EmployeeID:      cp.EmployeeID,
		EmployeeName:    cp.Employee.User.Name,
		CurrentPosition: cp.CurrentPosition,
		TargetPosition:  cp.TargetPosition,
		SkillsToDevelop: cp.SkillsToDevelop,
		Achievements:    cp.Achievements,
		CreatedAt:       cp.CreatedAt.Format(time.RFC3339),
	}
	if cp.LastPromotion != nil {
		v := cp.LastPromotion.Format("2006-01-02")
		resp.LastPromotion = &v
	}
	if cp.NextReview != nil {
		v := cp.NextReview.Format("2006-01-02")
		resp.NextReview = &v
	}
	return resp
}
