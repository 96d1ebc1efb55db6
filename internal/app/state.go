package app

import (
	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/core"
)

// AppState is the application state owned by a Model.
type AppState struct {
	IsPlaying bool
	// CurrentURI is the current track's URI, or nil when none is set. An
	// empty string is a set URI. It is not required to reference a track in
	// Playlist.
	CurrentURI *string
	Playlist   []core.Track
	Browser    *browser.State
}

// NewState returns the initial state: nothing playing and an empty playlist.
func NewState() *AppState {
	return &AppState{
		Browser: browser.NewState(),
	}
}

// CurrentTrack returns the playlist entry for CurrentURI, if any.
func (s *AppState) CurrentTrack() (*core.Track, bool) {
	if s.CurrentURI == nil {
		return nil, false
	}
	i := core.IndexOf(s.Playlist, *s.CurrentURI)
	if i < 0 {
		return nil, false
	}
	return &s.Playlist[i], true
}
