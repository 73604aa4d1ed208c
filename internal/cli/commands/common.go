package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/storekeep-dev/storekeep/internal/cache"
	envconfig "github.com/storekeep-dev/storekeep/internal/config"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
	"github.com/storekeep-dev/storekeep/internal/cli/config"
	"github.com/storekeep-dev/storekeep/internal/cli/credstore"
	"github.com/storekeep-dev/storekeep/internal/cli/portalselect"
	"github.com/storekeep-dev/storekeep/internal/cli/session"
)

// getSelectedPortal loads the project config and resolves the portal to use.
// This is common logic used by most commands.
func getSelectedPortal(portalAlias string) (*config.Portal, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'storekeep init' to create a configuration file", err)
	}

	portal, err := portalselect.ResolvePortal(cfg, portalAlias)
	if err != nil {
		return nil, err
	}

	return portal, nil
}

// newCredStore builds the credential store selected by the environment
func newCredStore(envCfg *envconfig.Config) (credstore.Store, error) {
	if envCfg.CredStore == "keyring" {
		return credstore.NewKeyring(), nil
	}

	path, err := credstore.DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	return credstore.NewFile(path, envCfg.SessionTTL), nil
}

// newPortalClient builds an API client bound to the session. The first 401
// on an authenticated request clears the session and tells the user to log
// back in; callers of the failing request still see the error itself.
func newPortalClient(envCfg *envconfig.Config, portal *config.Portal, sess *session.Session) *client.Client {
	return client.New(portal.URL, envCfg.RequestTimeout, sess, func(detail string) {
		_ = sess.Logout()
		if detail == "" {
			detail = "session expired"
		}
		fmt.Fprintf(os.Stderr, "⚠ %s. You have been logged out. Run 'storekeep login' to sign in again.\n", detail)
	})
}

// openSession restores the persisted session (if any) for the resolved
// portal and returns it alongside a portal client
func openSession(portalAlias string) (*session.Session, *client.Client, error) {
	envCfg, err := envconfig.Load()
	if err != nil {
		return nil, nil, err
	}

	portal, err := getSelectedPortal(portalAlias)
	if err != nil {
		return nil, nil, err
	}

	store, err := newCredStore(envCfg)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(store, nil)
	sess.Restore()

	apiClient := newPortalClient(envCfg, portal, sess)
	return sess, apiClient, nil
}

// resolveCachePath returns the cache database path, honouring
// STOREKEEP_CACHE_DIR when set
func resolveCachePath() (string, error) {
	envCfg, err := envconfig.Load()
	if err != nil {
		return "", err
	}
	if envCfg.CacheDir != "" {
		return filepath.Join(envCfg.CacheDir, "cache.sqlite"), nil
	}
	return cache.DefaultPath()
}

// requireSession is the guard in front of protected commands: it restores
// the session and refuses to proceed when no authenticated session exists,
// naming the command so the user knows what to retry after logging in.
func requireSession(cmdName, portalAlias string) (*session.Session, *client.Client, error) {
	sess, apiClient, err := openSession(portalAlias)
	if err != nil {
		return nil, nil, err
	}

	if !sess.IsAuthenticated() {
		return nil, nil, fmt.Errorf("not logged in. Run 'storekeep login', then retry 'storekeep %s'", cmdName)
	}

	return sess, apiClient, nil
}
