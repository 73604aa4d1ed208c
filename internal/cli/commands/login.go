package commands

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	envconfig "github.com/storekeep-dev/storekeep/internal/config"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
	"github.com/storekeep-dev/storekeep/internal/cli/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password, portalAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Storekeep portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, username, password, portalAlias)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set STOREKEEP_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set STOREKEEP_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")

	return cmd
}

func runLogin(cmd *cobra.Command, username, password, portalAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("STOREKEEP_USERNAME")
	}
	if password == "" {
		password = os.Getenv("STOREKEEP_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or STOREKEEP_USERNAME env var)")
	}

	envCfg, err := envconfig.Load()
	if err != nil {
		return err
	}

	portal, err := getSelectedPortal(portalAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or STOREKEEP_PASSWORD env var)")
		}
	}

	store, err := newCredStore(envCfg)
	if err != nil {
		return err
	}

	apiClient := client.New(portal.URL, envCfg.RequestTimeout, nil, nil)
	sess := session.New(store, apiClient)

	fmt.Printf("Logging in to %s (%s)...\n", portal.Alias, portal.URL)

	identity, err := sess.Login(cmd.Context(), username, password)
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("login rejected: %s", authErr.Detail)
		}
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("could not reach the portal, please try again: %w", err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s\n", identity.Username)
	if identity.Role == session.RoleAdmin {
		fmt.Println("  Role: Admin (all stores)")
	} else if identity.StoreName != nil {
		fmt.Printf("  Role: Store manager of %s (store %d)\n", *identity.StoreName, *identity.StoreID)
	}

	return nil
}
