package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spraklab/wsrng-server/internal/config"
	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

func newImportResourceCmd() *cobra.Command {
	var projectName string
	var scriptID int64
	var name string

	cmd := &cobra.Command{
		Use:   "import-resource <file>",
		Short: "Store a file as a base64-encoded resource in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runImportResource(cfg, args[0], projectName, scriptID, name)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "project to scope the resource to (empty for shared)")
	cmd.Flags().Int64Var(&scriptID, "script", script.DefaultScriptID, "script id the resource belongs to")
	cmd.Flags().StringVar(&name, "name", "", "resource name (defaults to the file name)")
	return cmd
}

func runImportResource(cfg config.Config, path, projectName string, scriptID int64, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	if name == "" {
		name = filepath.Base(path)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	svc := resource.NewService(sqlite.NewResourceRepository(db))
	res := &resource.Resource{
		Project:  projectName,
		ScriptID: scriptID,
		Name:     name,
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
	if err := svc.Import(context.Background(), res); err != nil {
		return err
	}

	fmt.Printf("imported resource %s (%s, %d bytes)\n", name, mimeType, len(data))
	return nil
}
