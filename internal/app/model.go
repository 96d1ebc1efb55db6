// Package app implements the application reducer: actions in, state mutated,
// events out.
package app

import (
	"io"
	"log/slog"

	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/core"
)

// CredentialSaver persists credentials. Model treats Save as fire-and-forget:
// a returned error is logged and otherwise ignored.
type CredentialSaver interface {
	Save(creds core.Credentials) error
}

// TokenUpdater receives the bearer token used for API requests.
type TokenUpdater interface {
	UpdateToken(token string)
}

// BrowserReducer is the nested browser state's update capability.
type BrowserReducer interface {
	UpdateWith(action browser.Action) []browser.Event
}

// Services are the collaborators a Model calls into.
type Services struct {
	Credentials CredentialSaver
	API         TokenUpdater
}

// Model owns an AppState and applies actions to it.
type Model struct {
	state    *AppState
	services Services
	browser  BrowserReducer
	logger   *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBrowser overrides the browser reducer. By default the state's own
// browser state is used.
func WithBrowser(b BrowserReducer) Option {
	return func(m *Model) {
		m.browser = b
	}
}

// New creates a Model over state. A nil state is replaced with NewState().
func New(state *AppState, services Services, opts ...Option) *Model {
	if state == nil {
		state = NewState()
	}
	if state.Browser == nil {
		state.Browser = browser.NewState()
	}

	m := &Model{
		state:    state,
		services: services,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.browser == nil {
		m.browser = state.Browser
	}
	return m
}

// State returns the model's state. Callers must not mutate it.
func (m *Model) State() *AppState {
	return m.state
}

// Apply mutates the state according to action and returns the resulting
// events in order. It never fails; actions with nothing to do return no
// events.
func (m *Model) Apply(action Action) []Event {
	if action == nil {
		return nil
	}
	m.logger.Debug("apply action", "action", action.ActionType())

	switch a := action.(type) {
	case Play:
		m.state.IsPlaying = true
		return []Event{TrackResumed{}}

	case Pause:
		m.state.IsPlaying = false
		return []Event{TrackPaused{}}

	case Next:
		next, ok := core.Successor(m.state.Playlist, m.state.CurrentURI)
		if !ok {
			return nil
		}
		return m.changeTrack(next.URI)

	case Previous:
		prev, ok := core.Predecessor(m.state.Playlist, m.state.CurrentURI)
		if !ok {
			return nil
		}
		return m.changeTrack(prev.URI)

	case Load:
		return m.changeTrack(a.URI)

	case LoadPlaylist:
		m.state.Playlist = a.Tracks
		return []Event{PlaylistChanged{}}

	case LoginSuccess:
		m.completeLogin(a.Credentials)
		return []Event{LoginCompleted{}}

	case Seek:
		return []Event{TrackSeeked{PositionMs: a.PositionMs}}

	case SyncSeek:
		return []Event{SeekSynced{PositionMs: a.PositionMs}}

	case Start:
		return []Event{Started{}}

	case TryLogin:
		return []Event{LoginStarted{Username: a.Username, Password: a.Password}}

	case BrowserAction:
		nested := m.browser.UpdateWith(a.Action)
		if len(nested) == 0 {
			return nil
		}
		events := make([]Event, len(nested))
		for i, e := range nested {
			events[i] = BrowserEvent{Event: e}
		}
		return events
	}

	return nil
}

// changeTrack makes uri current and playing.
func (m *Model) changeTrack(uri string) []Event {
	m.state.IsPlaying = true
	m.state.CurrentURI = &uri
	return []Event{TrackChanged{URI: uri}}
}

// completeLogin persists creds and hands the token to the API client.
// Persistence failures are logged only; the in-memory token still applies.
func (m *Model) completeLogin(creds core.Credentials) {
	if m.services.Credentials != nil {
		if err := m.services.Credentials.Save(creds); err != nil {
			m.logger.Warn("failed to save credentials", "username", creds.Username, "error", err)
		}
	}
	if m.services.API != nil {
		m.services.API.UpdateToken(creds.Token)
	}
}
