package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/stoprepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	appLogger, logCloser := cmd.NewLogger(configs)
	defer func() {
		_ = logCloser.Close()
	}()

	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = db.AutoMigrate(&stoprepo.StopDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, appLogger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	loadDotEnv(".env")

	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:                goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:                goDotEnvVariable("DB_PORT", "5432"),
		DBUser:                goDotEnvVariable("DB_USER", ""),
		DBPassword:            goDotEnvVariable("DB_PASSWORD", ""),
		DBName:                goDotEnvVariable("DB_NAME", ""),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE", "disable"),
		LogLevel:              goDotEnvVariable("LOG_LEVEL", "info"),
		LogFile:               goDotEnvVariable("LOG_FILE", ""),
		SequenceAuditSchedule: goDotEnvVariable("SEQUENCE_AUDIT_SCHEDULE", ""),
	}
	return config
}

// loadDotEnv reads a .env file into the environment. A missing file is fine; variables
// already set in the environment win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading %s file: %v", path, err)
	}
}

func goDotEnvVariable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true

	if err := httpin.Register(e, app.CreateServer()); err != nil {
		e.Logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
