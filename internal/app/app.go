package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/activity"
	"github.com/adamstrass/payroll-dashboard/internal/attachment"
	"github.com/adamstrass/payroll-dashboard/internal/auth"
	"github.com/adamstrass/payroll-dashboard/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&attachment.Attachment{}); err != nil {
		return fmt.Errorf("migrate proof_blobs: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	events := activity.NewNopPublisher()
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		events = activity.NewKafkaPublisher(strings.Split(brokers, ","), logger)
		logger.Info("activity events enabled", zap.String("brokers", brokers))
	}

	authCfg := auth.Config{
		Username:     os.Getenv("DASHBOARD_USER"),
		PasswordHash: os.Getenv("DASHBOARD_PASSWORD_HASH"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SessionTTL:   24 * time.Hour,
	}

	return registerModules(router, db, rdb, events, authCfg, logger)
}
