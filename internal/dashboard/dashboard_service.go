package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/absence"
	"github.com/ImaneBelmiloudi/hr-management/internal/complaint"
	dashboarderrors "github.com/ImaneBelmiloudi/hr-management/internal/dashboard/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/leaverequest"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const cacheTTL = 60 * time.Second

type Service interface {
	StaffStats(ctx context.Context) (StaffStatsResponse, error)
	EmployeeStats(ctx context.Context, actor identity.Actor) (EmployeeStatsResponse, error)
}

type service struct {
	repo       Repository
	employees  employee.Repository
	leaves     leaverequest.Repository
	absences   absence.Repository
	complaints complaint.Repository
	rdb        *redis.Client
	group      singleflight.Group
	logger     *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Repository,
	leaves leaverequest.Repository,
	absences absence.Repository,
	complaints complaint.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:       repo,
		employees:  employees,
		leaves:     leaves,
		absences:   absences,
		complaints: complaints,
		rdb:        rdb,
		logger:     l,
	}
}

// StaffStats serves admin and rh dashboards; the aggregates are shared
// so they share one cache entry. A cold key is computed once per process
// via singleflight no matter how many requests pile up on it.
func (s *service) StaffStats(ctx context.Context) (StaffStatsResponse, error) {
	const key = "dashboard:staff"
	var resp StaffStatsResponse
	if s.cacheGet(ctx, key, &resp) {
		return resp, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.computeStaffStats(ctx)
	})
	if err != nil {
		return StaffStatsResponse{}, err
	}
	resp = v.(StaffStatsResponse)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

func (s *service) computeStaffStats(ctx context.Context) (StaffStatsResponse, error) {
	var stats StaffStats
	var err error

	if stats.TotalEmployees, err = s.repo.CountEmployees(ctx, ""); err != nil {
		return StaffStatsResponse{}, err
	}
	if stats.ActiveEmployees, err = s.repo.CountEmployees(ctx, employee.StatusActive); err != nil {
		return StaffStatsResponse{}, err
	}
	if stats.InactiveEmployees, err = s.repo.CountEmployees(ctx, employee.StatusInactive); err != nil {
		return StaffStatsResponse{}, err
	}
	if stats.PendingLeaves, err = s.leaves.CountByStatus(ctx, leaverequest.StatusPending); err != nil {
		return StaffStatsResponse{}, err
	}
	if stats.RecentComplaints, err = s.complaints.CountByStatus(ctx, complaint.StatusPending); err != nil {
		return StaffStatsResponse{}, err
	}

	recent, err := s.repo.RecentEmployees(ctx, 5)
	if err != nil {
		return StaffStatsResponse{}, err
	}
	recentOut := make([]RecentEmployee, len(recent))
	for i, e := range recent {
		recentOut[i] = RecentEmployee{
			ID:       e.ID,
			Name:     e.User.Name,
			Email:    e.User.Email,
			Position: e.Position,
			Grade:    e.Grade,
			HireDate: e.HireDate.Format("2006-01-02"),
			Status:   e.Status,
		}
	}

	return StaffStatsResponse{Stats: stats, RecentEmployees: recentOut}, nil
}

func (s *service) EmployeeStats(ctx context.Context, actor identity.Actor) (EmployeeStatsResponse, error) {
	if actor.EmployeeID == nil {
		return EmployeeStatsResponse{}, dashboarderrors.ErrProfileNotFound
	}
	employeeID := *actor.EmployeeID

	key := fmt.Sprintf("dashboard:employee:%d", employeeID)
	var resp EmployeeStatsResponse
	if s.cacheGet(ctx, key, &resp) {
		return resp, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.computeEmployeeStats(ctx, actor.UserID, employeeID)
	})
	if err != nil {
		return EmployeeStatsResponse{}, err
	}
	resp = v.(EmployeeStatsResponse)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

func (s *service) computeEmployeeStats(ctx context.Context, userID, employeeID uint) (EmployeeStatsResponse, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeStatsResponse{}, dashboarderrors.ErrProfileNotFound
		}
		return EmployeeStatsResponse{}, err
	}

	var stats EmployeeStats
	if stats.PendingLeaves, err = s.leaves.CountByEmployeeAndStatus(ctx, employeeID, leaverequest.StatusPending); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.ApprovedLeaves, err = s.leaves.CountByEmployeeAndStatus(ctx, employeeID, leaverequest.StatusApproved); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.RejectedLeaves, err = s.leaves.CountByEmployeeAndStatus(ctx, employeeID, leaverequest.StatusRejected); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.PendingAbsences, err = s.absences.CountByEmployeeAndStatus(ctx, employeeID, absence.StatusPending); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.ApprovedAbsences, err = s.absences.CountByEmployeeAndStatus(ctx, employeeID, absence.StatusApproved); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.RejectedAbsences, err = s.absences.CountByEmployeeAndStatus(ctx, employeeID, absence.StatusRejected); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.PendingComplaints, err = s.complaints.CountByEmployeeAndStatus(ctx, employeeID, complaint.StatusPending); err != nil {
		return EmployeeStatsResponse{}, err
	}
	if stats.ResolvedComplaints, err = s.complaints.CountByEmployeeAndStatus(ctx, employeeID, complaint.StatusResolved); err != nil {
		return EmployeeStatsResponse{}, err
	}

	recent, err := s.repo.RecentLeaveRequests(ctx, employeeID, 3)
	if err != nil {
		return EmployeeStatsResponse{}, err
	}
	recentOut := make([]RecentLeaveRequest, len(recent))
	for i, lr := range recent {
		recentOut[i] = RecentLeaveRequest{
			ID:        lr.ID,
			Type:      lr.Type,
			StartDate: lr.StartDate.Format("2006-01-02"),
			EndDate:   lr.EndDate.Format("2006-01-02"),
			Duration:  lr.Duration,
			Status:    string(lr.Status),
			CreatedAt: lr.CreatedAt.Format(time.RFC3339),
		}
	}

	return EmployeeStatsResponse{
		Employee: EmployeeSummary{
			ID:           e.ID,
			Name:         e.User.Name,
			Position:     e.Position,
			Department:   e.Department,
			LeaveBalance: e.LeaveBalance,
			Status:       e.Status,
		},
		Stats:               stats,
		RecentLeaveRequests: recentOut,
	}, nil
}

func (s *service) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.rdb == nil {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		s.logger.Warn("dashboard cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *service) cacheSet(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
