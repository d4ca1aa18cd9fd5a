package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/store"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		manager.Restore(cmd.Context())
		if !manager.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		p := manager.Profile()
		fmt.Printf("Username: %s\n", p.Username)
		if p.Email != "" {
			fmt.Printf("Email:    %s\n", p.Email)
		}
		if name := p.DisplayName(); name != p.Username {
			fmt.Printf("Name:     %s\n", name)
		}
		return nil
	},
}
