package commands

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/session"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var portalAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(portalAlias)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")

	return cmd
}

func runWhoami(portalAlias string) error {
	sess, _, err := requireSession("whoami", portalAlias)
	if err != nil {
		return err
	}

	identity, _ := sess.Identity()

	fmt.Printf("User: %s\n", identity.Username)
	if identity.Role == session.RoleAdmin {
		fmt.Println("Role: Admin (all stores)")
	} else if identity.StoreName != nil {
		fmt.Printf("Role: Store manager of %s (store %d)\n", *identity.StoreName, *identity.StoreID)
	}

	if expiry, ok := tokenExpiry(sess.Token()); ok {
		if time.Now().After(expiry) {
			fmt.Printf("Token: expired %s (the portal will reject the next request)\n", expiry.Format(time.RFC3339))
		} else {
			fmt.Printf("Token: valid until %s\n", expiry.Format(time.RFC3339))
		}
	}

	return nil
}

// tokenExpiry reads the exp claim from the bearer token for display only.
// The token is not validated here; only the portal can do that.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}

	return expiry.Time, true
}
