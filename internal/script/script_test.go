package script

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/core"
	spoterrors "github.com/tessro/spot/internal/errors"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want app.Action
	}{
		{name: "blank", line: "   ", want: nil},
		{name: "comment", line: "# setup", want: nil},
		{name: "play", line: "play", want: app.Play{}},
		{name: "resume alias", line: "RESUME", want: app.Play{}},
		{name: "pause", line: "pause", want: app.Pause{}},
		{name: "next", line: "next", want: app.Next{}},
		{name: "prev", line: "prev", want: app.Previous{}},
		{name: "previous", line: "previous", want: app.Previous{}},
		{name: "start", line: "start", want: app.Start{}},
		{name: "load", line: "load spotify:track:a", want: app.Load{URI: "spotify:track:a"}},
		{name: "seek ms", line: "seek 83000", want: app.Seek{PositionMs: 83000}},
		{name: "seek duration", line: "seek 1m23s", want: app.Seek{PositionMs: 83000}},
		{name: "sync seek", line: "sync-seek 1500", want: app.SyncSeek{PositionMs: 1500}},
		{name: "login", line: "login alice hunter2", want: app.TryLogin{Username: "alice", Password: "hunter2"}},
		{
			name: "playlist",
			line: "playlist spotify:track:a spotify:track:b",
			want: app.LoadPlaylist{Tracks: []core.Track{{URI: "spotify:track:a"}, {URI: "spotify:track:b"}}},
		},
		{
			name: "browse search",
			line: "browse search kind of blue",
			want: app.BrowserAction{Action: browser.Search{Query: "kind of blue"}},
		},
		{name: "browse clear", line: "browse clear", want: app.BrowserAction{Action: browser.ClearContent{}}},
		{name: "json play", line: `{"action":"play"}`, want: app.Play{}},
		{name: "json load", line: `{"action":"load","uri":"spotify:track:z"}`, want: app.Load{URI: "spotify:track:z"}},
		{name: "json seek zero", line: `{"action":"seek","position_ms":0}`, want: app.Seek{PositionMs: 0}},
		{name: "json sync seek", line: `{"action":"sync_seek","position_ms":10}`, want: app.SyncSeek{PositionMs: 10}},
		{
			name: "json try login",
			line: `{"action":"try_login","username":"bob","password":"pw"}`,
			want: app.TryLogin{Username: "bob", Password: "pw"},
		},
		{
			name: "json playlist",
			line: `{"action":"load_playlist","tracks":[{"uri":"u1","title":"One"},{"uri":"u2","title":"Two"}]}`,
			want: app.LoadPlaylist{Tracks: []core.Track{{URI: "u1", Title: "One"}, {URI: "u2", Title: "Two"}}},
		},
		{
			name: "json browse set",
			line: `{"action":"browse","browse":"set","albums":[{"uri":"a1","title":"Album"}]}`,
			want: app.BrowserAction{Action: browser.SetContent{Albums: []browser.Album{{URI: "a1", Title: "Album"}}}},
		},
		{
			name: "json browse append",
			line: `{"action":"browse","browse":"append","albums":[{"uri":"a2","title":"More"}]}`,
			want: app.BrowserAction{Action: browser.AppendContent{Albums: []browser.Album{{URI: "a2", Title: "More"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLine() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseLineLoginSuccess(t *testing.T) {
	got, err := ParseLine(`{"action":"login_success","credentials":{"username":"alice","token":"tok","token_expires_at":"2030-01-02T03:04:05Z"}}`)
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	ls, ok := got.(app.LoginSuccess)
	if !ok {
		t.Fatalf("ParseLine() = %#v, want LoginSuccess", got)
	}
	want := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	if ls.Credentials.Username != "alice" || ls.Credentials.Token != "tok" || !ls.Credentials.TokenExpiresAt.Equal(want) {
		t.Errorf("Credentials = %+v", ls.Credentials)
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{name: "unknown command", line: "shuffle", want: spoterrors.ErrUnknownAction},
		{name: "load without uri", line: "load", want: spoterrors.ErrInvalidScript},
		{name: "play with args", line: "play now", want: spoterrors.ErrInvalidScript},
		{name: "bad position", line: "seek soon", want: spoterrors.ErrInvalidScript},
		{name: "negative position", line: "seek -5", want: spoterrors.ErrInvalidScript},
		{name: "login missing password", line: "login alice", want: spoterrors.ErrInvalidScript},
		{name: "browse without subcommand", line: "browse", want: spoterrors.ErrInvalidScript},
		{name: "browse unknown", line: "browse shuffle", want: spoterrors.ErrUnknownAction},
		{name: "browse search empty", line: "browse search", want: spoterrors.ErrInvalidScript},
		{name: "bad json", line: `{"action":`, want: spoterrors.ErrInvalidScript},
		{name: "json unknown field", line: `{"action":"play","volume":3}`, want: spoterrors.ErrInvalidScript},
		{name: "json missing action", line: `{}`, want: spoterrors.ErrInvalidScript},
		{name: "json unknown action", line: `{"action":"shuffle"}`, want: spoterrors.ErrUnknownAction},
		{name: "json load without uri", line: `{"action":"load"}`, want: spoterrors.ErrInvalidScript},
		{name: "json seek without position", line: `{"action":"seek"}`, want: spoterrors.ErrInvalidScript},
		{name: "json login success without creds", line: `{"action":"login_success"}`, want: spoterrors.ErrInvalidScript},
		{name: "json browse unknown", line: `{"action":"browse","browse":"shuffle"}`, want: spoterrors.ErrUnknownAction},
		{name: "json two objects", line: `{"action":"play"}{"action":"pause"}`, want: spoterrors.ErrInvalidScript},
		{name: "json trailing junk", line: `{"action":"play"} junk`, want: spoterrors.ErrInvalidScript},
		{name: "json trailing brace", line: `{"action":"play"}}`, want: spoterrors.ErrInvalidScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseLine() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# demo session",
		"start",
		"playlist a b c",
		"",
		"load b",
		"shuffle",
		"next",
		"seek later",
	}, "\n")

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantTypes := []string{"start", "load_playlist", "load", "next"}
	if len(result.Data) != len(wantTypes) {
		t.Fatalf("got %d actions, want %d", len(result.Data), len(wantTypes))
	}
	for i, a := range result.Data {
		if a.ActionType() != wantTypes[i] {
			t.Errorf("action %d = %q, want %q", i, a.ActionType(), wantTypes[i])
		}
	}

	if len(result.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0].Error(), "line 6:") {
		t.Errorf("first error = %q, want line 6", result.Errors[0])
	}
	if !strings.HasPrefix(result.Errors[1].Error(), "line 8:") {
		t.Errorf("second error = %q, want line 8", result.Errors[1])
	}
	if !errors.Is(result.Err(), spoterrors.ErrUnknownAction) {
		t.Error("Err() should wrap ErrUnknownAction")
	}
}
