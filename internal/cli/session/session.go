package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
	"github.com/storekeep-dev/storekeep/internal/cli/credstore"
)

// Role is the portal role carried by an authenticated identity
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleStoreManager Role = "store_manager"
)

// Identity describes who is logged in. StoreID and StoreName are nil
// exactly when Role is admin; a store manager is always bound to one store.
type Identity struct {
	Username  string  `json:"username"`
	Role      Role    `json:"role"`
	StoreID   *int64  `json:"storeId"`
	StoreName *string `json:"storeName"`
}

// valid reports whether the identity satisfies the role/store shape
func (i Identity) valid() bool {
	if i.Username == "" {
		return false
	}
	switch i.Role {
	case RoleAdmin:
		return i.StoreID == nil && i.StoreName == nil
	case RoleStoreManager:
		return i.StoreID != nil && i.StoreName != nil
	default:
		return false
	}
}

// AuthError is a login rejected by the portal. The Detail message comes
// from the server and is safe to show next to the login form.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

// Authenticator is the backend login collaborator
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResponse, error)
}

// Session holds the current authentication state: the bearer token and the
// identity it belongs to, either both set or both absent. State is persisted
// through a credstore.Store so it survives across command invocations, and
// mutated only through Login, Logout, and Restore.
type Session struct {
	store credstore.Store
	auth  Authenticator

	mu       sync.Mutex
	token    string
	identity *Identity
}

// New creates an empty session backed by the given credential store. auth
// may be nil for sessions that only restore and never log in.
func New(store credstore.Store, auth Authenticator) *Session {
	return &Session{store: store, auth: auth}
}

// Login authenticates against the portal. On success the token and identity
// are set together and persisted together; on any failure prior state is
// left untouched. Rejected credentials come back as *AuthError carrying the
// server's message; an unreachable portal comes back wrapping
// client.ErrUnavailable so callers can tell the two apart.
func (s *Session) Login(ctx context.Context, username, password string) (Identity, error) {
	if s.auth == nil {
		return Identity{}, errors.New("session has no authenticator")
	}

	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			detail := apiErr.Detail
			if detail == "" {
				detail = "login failed"
			}
			return Identity{}, &AuthError{Detail: detail}
		}
		return Identity{}, err
	}

	identity := Identity{
		Username:  username,
		Role:      Role(resp.UserRole),
		StoreID:   resp.StoreID,
		StoreName: resp.StoreName,
	}
	if resp.AccessToken == "" || !identity.valid() {
		return Identity{}, fmt.Errorf("unexpected login response from portal")
	}

	identityJSON, err := json.Marshal(identity)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := s.store.Set(credstore.KeyToken, resp.AccessToken); err != nil {
		return Identity{}, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.store.Set(credstore.KeyIdentity, string(identityJSON)); err != nil {
		return Identity{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.identity = &identity
	s.mu.Unlock()

	return identity, nil
}

// Logout clears the session in memory and in persisted storage. Logging out
// of an empty session is a no-op.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Restore repopulates the session from persisted storage. A missing,
// malformed, or incomplete record leaves the session logged out; Restore
// never fails.
func (s *Session) Restore() bool {
	token, ok, err := s.store.Get(credstore.KeyToken)
	if err != nil || !ok || token == "" {
		return false
	}

	identityJSON, ok, err := s.store.Get(credstore.KeyIdentity)
	if err != nil || !ok {
		return false
	}

	var identity Identity
	if err := json.Unmarshal([]byte(identityJSON), &identity); err != nil || !identity.valid() {
		log.Debug().Msg("discarding malformed persisted session")
		return false
	}

	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.mu.Unlock()

	return true
}

// Token returns the bearer token, empty when logged out. Satisfies
// client.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether both token and identity are present
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.identity != nil
}

// Identity returns the current identity, when authenticated
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsAdmin reports whether the current identity has the admin role
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.identity.Role == RoleAdmin
}

// ManagedStoreID returns the store a store-manager identity is bound to
func (s *Session) ManagedStoreID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil || s.identity.StoreID == nil {
		return 0, false
	}
	return *s.identity.StoreID, true
}
