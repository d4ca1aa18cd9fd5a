package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/app"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	manager := auth.NewManager(st.SessionRepo())

	cfg := api.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	client, err := api.New(cfg, manager.Token, api.WithEventRepo(st.EventRepo()))
	if err != nil {
		return fmt.Errorf("build API client: %w", err)
	}

	return app.Run(app.Options{
		Client:    client,
		Generator: api.WithRetry(client, cfg.Retry),
		Auth:      manager,
		Store:     st,
	})
}
