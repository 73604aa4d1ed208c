package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	envconfig "github.com/storekeep-dev/storekeep/internal/config"

	"github.com/storekeep-dev/storekeep/internal/cli/session"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	envCfg, err := envconfig.Load()
	if err != nil {
		return err
	}

	store, err := newCredStore(envCfg)
	if err != nil {
		return err
	}

	// Logging out does not need a portal: clearing local credentials is
	// enough, the token is useless without them
	sess := session.New(store, nil)
	if err := sess.Logout(); err != nil {
		return err
	}

	fmt.Println("✓ Logged out.")
	return nil
}
