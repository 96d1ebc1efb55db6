package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tessro/spot/internal/core"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps credentials in a single-row SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
// If dbPath is empty, uses ~/.config/spot/credentials.db.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, DefaultDBName)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open credentials db: %w", err)
	}

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		username TEXT NOT NULL,
		token TEXT NOT NULL,
		token_expires_at INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate credentials schema: %w", err)
	}
	return nil
}

// Save stores creds, replacing anything stored before.
func (s *SQLiteStore) Save(creds core.Credentials) error {
	return s.SaveContext(context.Background(), creds)
}

// SaveContext is Save with a context.
func (s *SQLiteStore) SaveContext(ctx context.Context, creds core.Credentials) error {
	var expires int64
	if !creds.TokenExpiresAt.IsZero() {
		expires = creds.TokenExpiresAt.Unix()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO credentials (id, username, token, token_expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			token_expires_at = excluded.token_expires_at,
			updated_at = excluded.updated_at`,
		creds.Username, creds.Token, expires, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Load returns the stored credentials, or nil, nil when there are none.
func (s *SQLiteStore) Load() (*core.Credentials, error) {
	return s.LoadContext(context.Background())
}

// LoadContext is Load with a context.
func (s *SQLiteStore) LoadContext(ctx context.Context) (*core.Credentials, error) {
	var (
		creds   core.Credentials
		expires int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT username, token, token_expires_at FROM credentials WHERE id = 1`,
	).Scan(&creds.Username, &creds.Token, &expires)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if expires > 0 {
		creds.TokenExpiresAt = time.Unix(expires, 0)
	}
	return &creds, nil
}

// Delete removes the stored credentials.
func (s *SQLiteStore) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM credentials`); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
