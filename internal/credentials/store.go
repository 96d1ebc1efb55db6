// Package credentials persists login credentials between sessions.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tessro/spot/internal/core"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const (
	// DefaultFileName is the credentials file used by the file backend.
	DefaultFileName = "credentials.json"

	// DefaultDBName is the database used by the sqlite backend.
	DefaultDBName = "credentials.db"
)

// Store saves and loads credentials.
type Store interface {
	Save(creds core.Credentials) error
	// Load returns nil, nil when nothing has been stored.
	Load() (*core.Credentials, error)
	Delete() error
	// Path is the file backing the store.
	Path() string
	Close() error
}

// Open returns the store for backend, rooted at path. An empty path selects
// the default location under the user config directory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown credentials backend: %s", backend)
	}
}

// DefaultDir returns ~/.config/spot (or the platform equivalent).
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "spot"), nil
}
