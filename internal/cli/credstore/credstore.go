package credstore

// Keys under which session credentials are persisted. The session layer
// always writes and clears both together; a record missing either key is
// treated as no session at all.
const (
	KeyToken    = "token"
	KeyIdentity = "identity"
)

// Store defines the interface for credential storage operations.
// Implementations persist session credentials between command invocations;
// a mock implementation backs the tests.
type Store interface {
	// Get returns the stored value for key, and whether it was present.
	// A missing, expired, or unreadable record reports absent, not an error.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
	// Clear removes all stored credentials. Clearing an empty store is a no-op.
	Clear() error
}
