package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "net/http/pprof"

	"github.com/ManolyaGambira/prescriptions-api/config"
	"github.com/ManolyaGambira/prescriptions-api/data"
	"github.com/ManolyaGambira/prescriptions-api/handlers"
	"github.com/ManolyaGambira/prescriptions-api/interfaces"
	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/ocr"
	"github.com/ManolyaGambira/prescriptions-api/refdata"
	"github.com/ManolyaGambira/prescriptions-api/scheduler"
	"github.com/ManolyaGambira/prescriptions-api/server"
)

func init() {
	// Get the working directory and read the env variables
	if err := godotenv.Load(); err != nil {
		// If failed, try loading from executable directory
		ex, err := os.Executable()
		if err != nil {
			slog.Error("Failed to get executable path", "error", err)
			os.Exit(1)
		}

		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			slog.Error("Failed to change directory", "error", err)
			os.Exit(1)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions("logs", cfg.LogRetentionWeeks, parseLogLevel(cfg.LogLevel))

	container := data.NewContainer()
	container.SetServerStartTime(time.Now())

	loader := refdata.NewLoader(cfg.RefDataDir)
	sched := scheduler.NewScheduler(container, loader)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	extractor := buildExtractor(cfg)
	handler := handlers.NewHandler(container, extractor)
	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}

// buildExtractor wires the OCR engines from configuration. Any engine that
// cannot be created is skipped with a log entry; with no engine at all the
// analyze endpoint still works but every extraction reports failure.
func buildExtractor(cfg *config.Config) interfaces.TextExtractor {
	if !cfg.OCREnabled {
		logging.Info("OCR disabled by configuration")
		return ocr.Disabled{}
	}

	ctx := context.Background()

	var primary, fallback ocr.Engine

	if cfg.DocAIProcessorID != "" {
		engine, err := ocr.NewDocumentAIEngine(ctx, ocr.DocumentAIConfig{
			ProjectID:   cfg.DocAIProjectID,
			Location:    cfg.DocAILocation,
			ProcessorID: cfg.DocAIProcessorID,
		})
		if err != nil {
			logging.Warn("Document AI engine unavailable", "error", err.Error())
		} else {
			primary = engine
		}
	} else {
		logging.Info("No Document AI processor configured, skipping primary engine")
	}

	visionEngine, err := ocr.NewVisionEngine(ctx)
	if err != nil {
		logging.Warn("Vision engine unavailable", "error", err.Error())
	} else {
		fallback = visionEngine
	}

	if primary == nil && fallback == nil {
		logging.Warn("No OCR engine available, image analysis will report extraction failures")
		return ocr.Disabled{}
	}

	return ocr.NewAdapter(primary, fallback)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
