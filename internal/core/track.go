package core

import "time"

// Track describes a playable track. URI is the identifier used for playlist
// navigation; the rest is display metadata.
type Track struct {
	ID       string        `json:"id,omitempty"`
	URI      string        `json:"uri"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist,omitempty"`
	Artists  []string      `json:"artists,omitempty"`
	Album    string        `json:"album,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// DisplayName returns "Artist - Title", or just the title when the artist is
// unknown.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}
