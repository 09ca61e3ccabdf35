package app

import (
	"github.com/ImaneBelmiloudi/hr-management/internal/absence"
	"github.com/ImaneBelmiloudi/hr-management/internal/auth"
	"github.com/ImaneBelmiloudi/hr-management/internal/careerpath"
	"github.com/ImaneBelmiloudi/hr-management/internal/complaint"
	"github.com/ImaneBelmiloudi/hr-management/internal/dashboard"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/leaverequest"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/blob"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/counter"
	"github.com/ImaneBelmiloudi/hr-management/internal/user"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerRoutes builds every repository, service and handler and mounts
// the feature route groups under /api.
func registerRoutes(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	enforcer *casbin.Enforcer,
	blobs blob.Storage,
	logger *zap.Logger,
) {
	denylist := middleware.NewRedisDenylist(rdb)

	userRepo := user.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	leaveRepo := leaverequest.NewRepository(db)
	absenceRepo := absence.NewRepository(db)
	complaintRepo := complaint.NewRepository(db)
	careerPathRepo := careerpath.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	authService := auth.NewService(userRepo, employeeRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, userRepo, counterRepo, outboxRepo, logger)
	leaveService := leaverequest.NewService(db, leaveRepo, employeeRepo, outboxRepo, logger)
	absenceService := absence.NewService(db, absenceRepo, blobs, outboxRepo, logger)
	complaintService := complaint.NewService(db, complaintRepo, blobs, outboxRepo, logger)
	careerPathService := careerpath.NewService(careerPathRepo, employeeRepo, logger)
	dashboardService := dashboard.NewService(
		dashboardRepo, employeeRepo, leaveRepo, absenceRepo, complaintRepo, rdb, logger)

	api := router.Group("/api")
	api.Use(middleware.RequestID())

	auth.RegisterRoutes(api, auth.NewHandler(authService, logger), denylist)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService, logger), enforcer, denylist)
	leaverequest.RegisterRoutes(api, leaverequest.NewHandler(leaveService, rdb, logger), enforcer, denylist, rdb)
	absence.RegisterRoutes(api, absence.NewHandler(absenceService, rdb, logger), enforcer, denylist, rdb)
	complaint.RegisterRoutes(api, complaint.NewHandler(complaintService, rdb, logger), enforcer, denylist, rdb)
	careerpath.RegisterRoutes(api, careerpath.NewHandler(careerPathService, logger), enforcer, denylist)
	dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardService, logger), enforcer, denylist)
}
