package credstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "storekeep-cli"

// KeyringStore persists credentials in the OS keychain/credential manager.
// Opt-in via STOREKEEP_CRED_STORE=keyring; unlike the file store the OS
// keychain has no expiry, so the stored token lives until logout or until
// the portal rejects it.
type KeyringStore struct {
	service string
}

// NewKeyring creates a keyring-backed store
func NewKeyring() *KeyringStore {
	return &KeyringStore{service: keyringService}
}

func (k *KeyringStore) Get(key string) (string, bool, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load credential: %w", err)
	}
	return value, true, nil
}

func (k *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear() error {
	for _, key := range []string{KeyToken, KeyIdentity} {
		if err := keyring.Delete(k.service, key); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue // Already deleted
			}
			return fmt.Errorf("failed to delete credential: %w", err)
		}
	}
	return nil
}
