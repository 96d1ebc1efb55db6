package app

import (
	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/core"
)

// Action is an intent submitted to Model.Apply. The set is closed: new
// variants must be handled in Apply or the sumtype check fails.
//
//sumtype:decl
type Action interface {
	// ActionType returns a stable identifier for logging and scripts.
	ActionType() string
	isAction()
}

// Play resumes playback.
type Play struct{}

// Pause pauses playback.
type Pause struct{}

// Next moves to the track after the current one.
type Next struct{}

// Previous moves to the track before the current one.
type Previous struct{}

// Load makes URI the current track and starts playing it.
type Load struct {
	URI string
}

// LoadPlaylist replaces the playlist.
type LoadPlaylist struct {
	Tracks []core.Track
}

// LoginSuccess carries credentials from a completed login.
type LoginSuccess struct {
	Credentials core.Credentials
}

// Seek is a user-requested seek, in milliseconds.
type Seek struct {
	PositionMs int
}

// SyncSeek reports the backend's playback position, in milliseconds.
type SyncSeek struct {
	PositionMs int
}

// Start signals that the application has started.
type Start struct{}

// TryLogin requests a login attempt.
type TryLogin struct {
	Username string
	Password string
}

// BrowserAction forwards an action to the browser sub-state.
type BrowserAction struct {
	Action browser.Action
}

func (Play) ActionType() string         { return "play" }
func (Pause) ActionType() string        { return "pause" }
func (Next) ActionType() string         { return "next" }
func (Previous) ActionType() string     { return "previous" }
func (Load) ActionType() string         { return "load" }
func (LoadPlaylist) ActionType() string { return "load_playlist" }
func (LoginSuccess) ActionType() string { return "login_success" }
func (Seek) ActionType() string         { return "seek" }
func (SyncSeek) ActionType() string     { return "sync_seek" }
func (Start) ActionType() string        { return "start" }
func (TryLogin) ActionType() string     { return "try_login" }

func (a BrowserAction) ActionType() string {
	if a.Action == nil {
		return "browser"
	}
	return "browser." + a.Action.ActionType()
}

func (Play) isAction()          {}
func (Pause) isAction()         {}
func (Next) isAction()          {}
func (Previous) isAction()      {}
func (Load) isAction()          {}
func (LoadPlaylist) isAction()  {}
func (LoginSuccess) isAction()  {}
func (Seek) isAction()          {}
func (SyncSeek) isAction()      {}
func (Start) isAction()         {}
func (TryLogin) isAction()      {}
func (BrowserAction) isAction() {}
