package app

import (
	"github.com/adamstrass/payroll-dashboard/internal/activity"
	"github.com/adamstrass/payroll-dashboard/internal/attachment"
	"github.com/adamstrass/payroll-dashboard/internal/auth"
	"github.com/adamstrass/payroll-dashboard/internal/dashboard"
	"github.com/adamstrass/payroll-dashboard/internal/middleware"
	"github.com/adamstrass/payroll-dashboard/internal/statestore"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	events activity.Publisher,
	authCfg auth.Config,
	logger *zap.Logger,
) error {
	// --- Stores ---
	states := statestore.New(rdb, logger)
	blobs := attachment.NewStore(db)

	// --- Services ---
	authService := auth.NewService(authCfg)
	dashboardService := dashboard.NewService(states, blobs, events, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		dashboard.RegisterRoutes(api, dashboardHandler, logger)
	}

	return nil
}
