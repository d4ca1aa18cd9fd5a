package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
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

		ctx := cmd.Context()
		manager := auth.NewManager(st.SessionRepo())
		manager.Restore(ctx)
		if !manager.Authenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		if err := manager.Logout(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
