package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[spotify]
client_id = "abc123"

[credentials]
backend = "sqlite"
path = "/tmp/creds.db"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Spotify.ClientID != "abc123" {
		t.Errorf("ClientID = %q, want %q", cfg.Spotify.ClientID, "abc123")
	}
	if cfg.Credentials.Backend != "sqlite" {
		t.Errorf("Backend = %q, want %q", cfg.Credentials.Backend, "sqlite")
	}
	if cfg.Credentials.Path != "/tmp/creds.db" {
		t.Errorf("Path = %q, want %q", cfg.Credentials.Path, "/tmp/creds.db")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Log.Level, "debug")
	}
	// Defaults for unset values
	if cfg.Session.Buffer != 16 {
		t.Errorf("Buffer = %d, want 16", cfg.Session.Buffer)
	}
	if cfg.Spotify.APIURL != "https://api.spotify.com/v1" {
		t.Errorf("APIURL = %q", cfg.Spotify.APIURL)
	}
}

func TestLoadFromMissing(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFrom() error = nil for missing file")
	}
}

func TestLoadSearchPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without file error = %v", err)
	}
	if cfg.Credentials.Backend != "file" {
		t.Errorf("Backend = %q, want default %q", cfg.Credentials.Backend, "file")
	}

	want := filepath.Join(home, "xdg", "spot", "config.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}

	if err := os.MkdirAll(filepath.Dir(want), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("[session]\nbuffer = 4\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != want {
		t.Errorf("FindConfigFile() = %q, want %q", got, want)
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Buffer != 4 {
		t.Errorf("Buffer = %d, want 4", cfg.Session.Buffer)
	}

	// ~/.spotrc wins
	rc := filepath.Join(home, ".spotrc")
	if err := os.WriteFile(rc, []byte("[session]\nbuffer = 8\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != rc {
		t.Errorf("FindConfigFile() = %q, want %q", got, rc)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPOT_SPOTIFY_CLIENT_ID", "env-client")
	t.Setenv("SPOT_SPOTIFY_API_URL", "http://localhost:9000")
	t.Setenv("SPOT_CREDENTIALS_BACKEND", "sqlite")
	t.Setenv("SPOT_CREDENTIALS_PATH", "/tmp/env.db")
	t.Setenv("SPOT_SESSION_BUFFER", "32")
	t.Setenv("SPOT_LOG_LEVEL", "warn")
	t.Setenv("SPOT_LOG_FILE", "/tmp/spot.log")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Spotify.ClientID != "env-client" {
		t.Errorf("ClientID = %q", cfg.Spotify.ClientID)
	}
	if cfg.Spotify.APIURL != "http://localhost:9000" {
		t.Errorf("APIURL = %q", cfg.Spotify.APIURL)
	}
	if cfg.Credentials.Backend != "sqlite" || cfg.Credentials.Path != "/tmp/env.db" {
		t.Errorf("Credentials = %+v", cfg.Credentials)
	}
	if cfg.Session.Buffer != 32 {
		t.Errorf("Buffer = %d, want 32", cfg.Session.Buffer)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/spot.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestEnvOverrideIgnoresBadNumber(t *testing.T) {
	t.Setenv("SPOT_SESSION_BUFFER", "lots")

	cfg := Default()
	applyEnvOverrides(cfg)
	if cfg.Session.Buffer != 16 {
		t.Errorf("Buffer = %d, want 16", cfg.Session.Buffer)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "bad backend", modify: func(c *Config) { c.Credentials.Backend = "keychain" }, wantErr: "credentials: invalid backend"},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log: invalid log level"},
		{name: "negative buffer", modify: func(c *Config) { c.Session.Buffer = -1 }, wantErr: "session: buffer"},
		{name: "bad api url", modify: func(c *Config) { c.Spotify.APIURL = "ftp://example.com" }, wantErr: "spotify: invalid api_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Credentials.Backend = "keychain"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "credentials:") || !strings.Contains(msg, "log:") {
		t.Errorf("Validate() error = %q, want both sections", msg)
	}
}
