package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			fmt.Print("Username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		cfg := api.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return err
		}
		manager := auth.NewManager(st.SessionRepo())
		client, err := api.New(cfg, manager.Token, api.WithEventRepo(st.EventRepo()))
		if err != nil {
			return fmt.Errorf("build API client: %w", err)
		}

		ctx := cmd.Context()
		session, err := client.LogIn(ctx, api.Credentials{Username: username, Password: string(password)})
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.Status == 401 {
				return errors.New("invalid username or password")
			}
			return err
		}

		if err := manager.Login(ctx, session.Token, session.User, true); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		fmt.Printf("Signed in as %s.\n", session.User.DisplayName())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username to sign in with")
}
