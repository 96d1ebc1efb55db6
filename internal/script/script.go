// Package script parses action scripts: one action per line, either as a
// shorthand command ("load spotify:track:x") or as a JSON object.
package script

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/core"
	spoterrors "github.com/tessro/spot/internal/errors"
)

// Parse reads a script. Lines that fail to parse are reported in the result's
// Errors as "line N: ..." and skipped; the remaining actions keep their order.
// Read errors are returned directly.
func Parse(r io.Reader) (*spoterrors.PartialResult[[]app.Action], error) {
	result := &spoterrors.PartialResult[[]app.Action]{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		action, err := ParseLine(scanner.Text())
		if err != nil {
			result.AddError(fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if action != nil {
			result.Data = append(result.Data, action)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return result, nil
}

// ParseLine parses a single line. Blank lines and # comments return nil, nil.
func ParseLine(line string) (app.Action, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	if strings.HasPrefix(line, "{") {
		return parseJSON(line)
	}
	return parseCommand(strings.Fields(line))
}

func parseCommand(fields []string) (app.Action, error) {
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "play", "resume":
		return noArgs(name, args, app.Play{})
	case "pause":
		return noArgs(name, args, app.Pause{})
	case "next":
		return noArgs(name, args, app.Next{})
	case "prev", "previous":
		return noArgs(name, args, app.Previous{})
	case "start":
		return noArgs(name, args, app.Start{})
	case "load":
		if err := expectArgs(name, args, 1); err != nil {
			return nil, err
		}
		return app.Load{URI: args[0]}, nil
	case "seek", "sync-seek":
		if err := expectArgs(name, args, 1); err != nil {
			return nil, err
		}
		pos, err := parsePosition(args[0])
		if err != nil {
			return nil, err
		}
		if name == "seek" {
			return app.Seek{PositionMs: pos}, nil
		}
		return app.SyncSeek{PositionMs: pos}, nil
	case "login":
		if err := expectArgs(name, args, 2); err != nil {
			return nil, err
		}
		return app.TryLogin{Username: args[0], Password: args[1]}, nil
	case "playlist":
		tracks := make([]core.Track, len(args))
		for i, uri := range args {
			tracks[i] = core.Track{URI: uri}
		}
		return app.LoadPlaylist{Tracks: tracks}, nil
	case "browse":
		return parseBrowse(args)
	default:
		return nil, fmt.Errorf("%w: %s", spoterrors.ErrUnknownAction, name)
	}
}

func parseBrowse(args []string) (app.Action, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: browse needs a subcommand (search, clear)", spoterrors.ErrInvalidScript)
	}
	switch strings.ToLower(args[0]) {
	case "search":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: browse search needs a query", spoterrors.ErrInvalidScript)
		}
		return app.BrowserAction{Action: browser.Search{Query: strings.Join(args[1:], " ")}}, nil
	case "clear":
		return noArgs("browse clear", args[1:], app.BrowserAction{Action: browser.ClearContent{}})
	default:
		return nil, fmt.Errorf("%w: browse %s", spoterrors.ErrUnknownAction, args[0])
	}
}

func noArgs(name string, args []string, action app.Action) (app.Action, error) {
	if err := expectArgs(name, args, 0); err != nil {
		return nil, err
	}
	return action, nil
}

func expectArgs(name string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", spoterrors.ErrInvalidScript, name, n, len(args))
	}
	return nil
}

// parsePosition accepts milliseconds ("83000") or a Go duration ("1m23s").
func parsePosition(s string) (int, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("%w: negative position %d", spoterrors.ErrInvalidScript, ms)
		}
		return ms, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: invalid position %q", spoterrors.ErrInvalidScript, s)
	}
	return int(d / time.Millisecond), nil
}

// jsonAction is the JSON line form. Only the fields relevant to Action are
// read.
type jsonAction struct {
	Action      string            `json:"action"`
	URI         string            `json:"uri"`
	Tracks      []core.Track      `json:"tracks"`
	Credentials *core.Credentials `json:"credentials"`
	PositionMs  *int              `json:"position_ms"`
	Username    string            `json:"username"`
	Password    string            `json:"password"`
	Browse      string            `json:"browse"`
	Albums      []browser.Album   `json:"albums"`
	Query       string            `json:"query"`
}

func parseJSON(line string) (app.Action, error) {
	var ja jsonAction
	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ja); err != nil {
		return nil, fmt.Errorf("%w: %v", spoterrors.ErrInvalidScript, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", spoterrors.ErrInvalidScript)
	}

	switch ja.Action {
	case "play":
		return app.Play{}, nil
	case "pause":
		return app.Pause{}, nil
	case "next":
		return app.Next{}, nil
	case "previous":
		return app.Previous{}, nil
	case "start":
		return app.Start{}, nil
	case "load":
		if ja.URI == "" {
			return nil, fmt.Errorf("%w: load requires uri", spoterrors.ErrInvalidScript)
		}
		return app.Load{URI: ja.URI}, nil
	case "load_playlist":
		return app.LoadPlaylist{Tracks: ja.Tracks}, nil
	case "login_success":
		if ja.Credentials == nil {
			return nil, fmt.Errorf("%w: login_success requires credentials", spoterrors.ErrInvalidScript)
		}
		return app.LoginSuccess{Credentials: *ja.Credentials}, nil
	case "seek", "sync_seek":
		if ja.PositionMs == nil || *ja.PositionMs < 0 {
			return nil, fmt.Errorf("%w: %s requires a non-negative position_ms", spoterrors.ErrInvalidScript, ja.Action)
		}
		if ja.Action == "seek" {
			return app.Seek{PositionMs: *ja.PositionMs}, nil
		}
		return app.SyncSeek{PositionMs: *ja.PositionMs}, nil
	case "try_login":
		return app.TryLogin{Username: ja.Username, Password: ja.Password}, nil
	case "browse":
		return parseJSONBrowse(ja)
	case "":
		return nil, fmt.Errorf("%w: missing action", spoterrors.ErrInvalidScript)
	default:
		return nil, fmt.Errorf("%w: %s", spoterrors.ErrUnknownAction, ja.Action)
	}
}

func parseJSONBrowse(ja jsonAction) (app.Action, error) {
	var nested browser.Action
	switch ja.Browse {
	case "set":
		nested = browser.SetContent{Albums: ja.Albums}
	case "append":
		nested = browser.AppendContent{Albums: ja.Albums}
	case "search":
		nested = browser.Search{Query: ja.Query}
	case "clear":
		nested = browser.ClearContent{}
	default:
		return nil, fmt.Errorf("%w: browse %q", spoterrors.ErrUnknownAction, ja.Browse)
	}
	return app.BrowserAction{Action: nested}, nil
}
