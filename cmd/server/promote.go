package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spraklab/wsrng-server/internal/config"
)

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <sessionId> <itemCode>",
		Short: "Relocate the latest recorded chunk for an item into the uploads area and re-notify handler modules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runPromote(cfg, args[0], args[1])
		},
	}
}

func runPromote(cfg config.Config, sessionID, itemCode string) error {
	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	application, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	dst, err := application.sessions.ForwardLatest(context.Background(), sessionID, itemCode)
	if err != nil {
		return err
	}

	fmt.Printf("promoted latest chunk for %s/%s to %s\n", sessionID, itemCode, dst)
	return nil
}
