package config

// Config is the root configuration structure.
type Config struct {
	Spotify     SpotifyConfig     `toml:"spotify"`
	Credentials CredentialsConfig `toml:"credentials"`
	Session     SessionConfig     `toml:"session"`
	Log         LogConfig         `toml:"log"`
}

// SpotifyConfig holds Spotify API settings.
type SpotifyConfig struct {
	ClientID string `toml:"client_id"`
	APIURL   string `toml:"api_url"`
}

// CredentialsConfig selects where credentials are persisted.
type CredentialsConfig struct {
	Backend string `toml:"backend"` // file or sqlite
	Path    string `toml:"path"`    // empty for the default location
}

// SessionConfig holds dispatcher settings.
type SessionConfig struct {
	// Buffer is the capacity of the action and event queues.
	Buffer int `toml:"buffer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
