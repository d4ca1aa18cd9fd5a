package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/lernix/internal/i18n"
	"github.com/abhisek/lernix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lernix",
	Short: "AI-assisted learning companion",
	Long:  "Lernix is a terminal client for the Lernix learning platform. Generate lessons on any topic, quiz yourself, and track your progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional; real environment variables win over it.
		_ = godotenv.Load()
		i18n.FromEnv()
	})

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LERNIX_DB env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LERNIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
