package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// Keystore persists the credential and identity between runs. Both
// slots live in one JSON file written via temp-file rename, so they are
// stored and cleared together and can never be individually out of sync.
type Keystore struct {
	path string
	mu   sync.Mutex
}

type keystoreState struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user,omitempty"`
}

// NewKeystore returns a Keystore backed by the file at path.
func NewKeystore(path string) *Keystore {
	return &Keystore{path: path}
}

// Load reads the persisted slots. A missing file is not an error; it
// simply means there is no saved session.
func (k *Keystore) Load() (string, *models.Identity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	f, err := os.Open(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("open keystore: %w", err)
	}
	defer f.Close()

	var st keystoreState
	if err := json.NewDecoder(f).Decode(&st); err != nil {
		return "", nil, fmt.Errorf("decode keystore: %w", err)
	}
	return st.Token, st.User, nil
}

// Save writes both slots atomically.
func (k *Keystore) Save(token string, identity models.Identity) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("create keystore dir: %w", err)
	}

	b, err := json.Marshal(keystoreState{Token: token, User: &identity})
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}

	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	if err := os.Rename(tmp, k.path); err != nil {
		return fmt.Errorf("replace keystore: %w", err)
	}
	return nil
}

// Clear removes both slots. Clearing an already-empty store is a no-op.
func (k *Keystore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := os.Remove(k.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear keystore: %w", err)
	}
	return nil
}
