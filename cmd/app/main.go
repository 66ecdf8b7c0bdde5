package main

import (
	"fmt"
	"log/slog"
	"os"

	"shipping/cmd"
	internalhttp "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/auditrepo"
	"shipping/internal/adapters/out/postgres/carrierrepo"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/rulerepo"
	"shipping/internal/adapters/out/redis"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs(logger)

	db := connectDB(configs, logger)
	cache := connectCache(configs, logger)

	app := cmd.NewCompositionRoot(configs, db, cache, logger)

	jobManager := jobs.NewJobManager(app.AuditRecorder(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "shipping"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func connectDB(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&carrierrepo.CarrierDTO{},
		&rulerepo.RuleDTO{},
		&auditrepo.AuditDTO{},
	); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	return db
}

// connectCache is optional: without REDIS_ADDR, or when redis is unreachable,
// the service runs uncached.
func connectCache(configs cmd.Config, logger *slog.Logger) *redis.Cache {
	if configs.RedisAddr == "" {
		return nil
	}

	cache, err := redis.NewCache(configs.RedisAddr, configs.RedisPassword, 0, redis.DefaultTTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, carrier and rule reads will be uncached", "error", err)
		return nil
	}

	return cache
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := internalhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateOverrideCourierCommandHandler(),
		app.CreateAdvanceOrderCommandHandler(),
		app.CreateGetAssignmentQueryHandler(),
		app.CreateGetAuditTrailQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
