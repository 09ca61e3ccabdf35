package main

import (
	"github.com/ImaneBelmiloudi/hr-management/internal/app"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	a, err := app.BuildApp()
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	if err := a.Run(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
