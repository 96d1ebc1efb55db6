package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			APIURL: "https://api.spotify.com/v1",
		},
		Credentials: CredentialsConfig{
			Backend: "file",
		},
		Session: SessionConfig{
			Buffer: 16,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Spotify.APIURL == "" {
		c.Spotify.APIURL = d.Spotify.APIURL
	}

	if c.Credentials.Backend == "" {
		c.Credentials.Backend = d.Credentials.Backend
	}

	if c.Session.Buffer == 0 {
		c.Session.Buffer = d.Session.Buffer
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
