// Package vault stores bot tokens in the OS keychain, falling back to an
// encrypted file when no keychain is available.
package vault

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/99designs/keyring"
)

const ServiceName = "blubot"

var ErrNotFound = errors.New("secret not found")

type Vault struct {
	ring keyring.Keyring
	path string
	mu   sync.RWMutex
}

// Open connects to the OS keychain. When the keychain cannot be opened the
// vault keeps working off the encrypted file at path.
func Open(path string) *Vault {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		// the keyring file backend prompts for a passphrase; the encrypted
		// fallback file covers that case instead
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.WinCredBackend,
		},
	})
	if err != nil {
		ring = nil
	}
	return New(ring, path)
}

// New builds a vault over an explicit keyring, which may be nil.
func New(ring keyring.Keyring, path string) *Vault {
	return &Vault{ring: ring, path: path}
}

func (v *Vault) Set(key, value string) error {
	if v.ring != nil {
		err := v.ring.Set(keyring.Item{
			Key:  key,
			Data: []byte(value),
		})
		if err == nil {
			return nil
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	secrets, err := loadSecrets(v.path)
	if err != nil {
		return err
	}
	secrets[key] = value
	return saveSecrets(v.path, secrets)
}

func (v *Vault) Get(key string) (string, error) {
	if v.ring != nil {
		item, err := v.ring.Get(key)
		if err == nil {
			return string(item.Data), nil
		}
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	secrets, err := loadSecrets(v.path)
	if err != nil {
		return "", err
	}
	if val, ok := secrets[key]; ok {
		return val, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (v *Vault) Delete(key string) error {
	removed := false
	if v.ring != nil {
		if err := v.ring.Remove(key); err == nil {
			removed = true
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	secrets, err := loadSecrets(v.path)
	if err != nil {
		return err
	}
	if _, ok := secrets[key]; ok {
		delete(secrets, key)
		removed = true
		if err := saveSecrets(v.path, secrets); err != nil {
			return err
		}
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

// List returns the keys known to the keychain and the fallback file.
func (v *Vault) List() ([]string, error) {
	seen := map[string]bool{}
	if v.ring != nil {
		if keys, err := v.ring.Keys(); err == nil {
			for _, k := range keys {
				seen[k] = true
			}
		}
	}

	v.mu.RLock()
	secrets, err := loadSecrets(v.path)
	v.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	for k := range secrets {
		seen[k] = true
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
