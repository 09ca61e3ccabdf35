package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ImaneBelmiloudi/hr-management/internal/absence"
	"github.com/ImaneBelmiloudi/hr-management/internal/authz"
	"github.com/ImaneBelmiloudi/hr-management/internal/careerpath"
	"github.com/ImaneBelmiloudi/hr-management/internal/complaint"
	"github.com/ImaneBelmiloudi/hr-management/internal/employee"
	"github.com/ImaneBelmiloudi/hr-management/internal/leaverequest"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/blob"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/connection"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/counter"
	"github.com/ImaneBelmiloudi/hr-management/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 10

type App struct {
	Config Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	logger *zap.Logger
}

// BuildApp connects the backing services, migrates the schema and wires
// every feature into the router.
func BuildApp() (*App, error) {
	cfg := LoadConfig()
	logger := zap.L()

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return nil, err
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return nil, err
	}

	blobs := blob.NewDiskStorage(cfg.UploadDir, cfg.UploadBaseURL)

	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, db, rdb, enforcer, blobs, logger)

	return &App{
		Config: cfg,
		Router: router,
		DB:     db,
		Redis:  rdb,
		logger: logger,
	}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&employee.Employee{},
		&leaverequest.LeaveRequest{},
		&absence.AbsenceJustification{},
		&complaint.Complaint{},
		&careerpath.CareerPath{},
		&counter.Counter{},
		&kafka.OutboxEvent{},
	)
}

// Run serves HTTP until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
