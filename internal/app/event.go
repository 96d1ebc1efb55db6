package app

import "github.com/tessro/spot/internal/browser"

// Event is a notification returned by Model.Apply for UI and audio consumers.
//
//sumtype:decl
type Event interface {
	EventType() string
	isEvent()
}

// TrackResumed reports that playback resumed.
type TrackResumed struct{}

// TrackPaused reports that playback paused.
type TrackPaused struct{}

// TrackChanged reports the new current track.
type TrackChanged struct {
	URI string
}

// PlaylistChanged reports that the playlist was replaced.
type PlaylistChanged struct{}

// LoginCompleted reports a successful login.
type LoginCompleted struct{}

// TrackSeeked reports a user seek.
type TrackSeeked struct {
	PositionMs int
}

// SeekSynced reports a backend position sync.
type SeekSynced struct {
	PositionMs int
}

// Started reports application start.
type Started struct{}

// LoginStarted asks the login collaborator to authenticate.
type LoginStarted struct {
	Username string
	Password string
}

// BrowserEvent wraps an event from the browser sub-state.
type BrowserEvent struct {
	Event browser.Event
}

func (TrackResumed) EventType() string    { return "track_resumed" }
func (TrackPaused) EventType() string     { return "track_paused" }
func (TrackChanged) EventType() string    { return "track_changed" }
func (PlaylistChanged) EventType() string { return "playlist_changed" }
func (LoginCompleted) EventType() string  { return "login_completed" }
func (TrackSeeked) EventType() string     { return "track_seeked" }
func (SeekSynced) EventType() string      { return "seek_synced" }
func (Started) EventType() string         { return "started" }
func (LoginStarted) EventType() string    { return "login_started" }

func (e BrowserEvent) EventType() string {
	if e.Event == nil {
		return "browser"
	}
	return "browser." + e.Event.EventType()
}

func (TrackResumed) isEvent()    {}
func (TrackPaused) isEvent()     {}
func (TrackChanged) isEvent()    {}
func (PlaylistChanged) isEvent() {}
func (LoginCompleted) isEvent()  {}
func (TrackSeeked) isEvent()     {}
func (SeekSynced) isEvent()      {}
func (Started) isEvent()         {}
func (LoginStarted) isEvent()    {}
func (BrowserEvent) isEvent()    {}
