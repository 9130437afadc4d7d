package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spraklab/wsrng-server/internal/audio"
	"github.com/spraklab/wsrng-server/internal/config"
	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/event"
	"github.com/spraklab/wsrng-server/internal/handler"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

// app holds the assembled service graph shared by the CLI commands.
type app struct {
	db        *sqlite.DB
	sessions  *session.Service
	projects  *project.Service
	scripts   *script.Service
	recfiles  *recfile.Service
	resources *resource.Service
	logger    *slog.Logger
}

func buildApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	scriptRepo := sqlite.NewScriptRepository(db)
	recfileRepo := sqlite.NewRecfileRepository(db)
	resourceRepo := sqlite.NewResourceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	dispatcher := event.NewDispatcher(logger)
	handlers, err := handler.Build(cfg.Modules.Enabled, handler.Deps{
		Logger:   logger,
		Visp:     cfg.Visp,
		Activity: activityRepo,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, h := range handlers {
		dispatcher.Register(h)
	}

	audioStore := audio.NewStore(cfg.Audio.StoragePath, cfg.Audio.UploadsPath, logger)

	projectSvc := project.NewService(projectRepo, dispatcher, logger)
	recfileSvc := recfile.NewService(recfileRepo, dispatcher, logger)
	scriptSvc := script.NewService(scriptRepo)
	resourceSvc := resource.NewService(resourceRepo)
	sessionSvc := session.NewService(sessionRepo, projectSvc, recfileSvc, audioStore, dispatcher, logger)

	return &app{
		db:        db,
		sessions:  sessionSvc,
		projects:  projectSvc,
		scripts:   scriptSvc,
		recfiles:  recfileSvc,
		resources: resourceSvc,
		logger:    logger,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
