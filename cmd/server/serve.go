package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spraklab/wsrng-server/internal/config"
	"github.com/spraklab/wsrng-server/internal/transport"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recording server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting WebSpeechRecorderServer", "version", version)

	application, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	router := transport.NewRouter(transport.Services{
		Sessions:  application.sessions,
		Projects:  application.projects,
		Scripts:   application.scripts,
		Recfiles:  application.recfiles,
		Resources: application.resources,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
	return nil
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// newLogger builds the slog logger from config: stdout, optionally teeing
// into a size-capped log file.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	logWriter := io.Writer(os.Stdout)
	closeLog := func() {}

	if cfg.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("log file error: %w", err)
		}
		logWriter = io.MultiWriter(os.Stdout, fileWriter)
		closeLog = func() { file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}))
	return logger, closeLog, nil
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
