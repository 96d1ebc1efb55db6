package cli

import (
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/browser"
	"github.com/tessro/spot/internal/dispatch"
)

// Table provides a simple table formatter.
type Table struct {
	w       *tabwriter.Writer
	headers []string
}

// NewTableWriter creates a table writing to out.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// TruncateString truncates a string to maxLen runes, adding "..." if
// truncated.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// recordJSON flattens a record for JSON output. Passwords are never written.
func recordJSON(r dispatch.Record) map[string]interface{} {
	out := map[string]interface{}{
		"id":     r.ID.String(),
		"seq":    r.Seq,
		"at":     r.At.Format(time.RFC3339Nano),
		"action": r.Action,
		"type":   r.Event.EventType(),
	}
	if r.Track != nil {
		out["track"] = r.Track.DisplayName()
	}

	switch e := r.Event.(type) {
	case app.TrackChanged:
		out["uri"] = e.URI
	case app.TrackSeeked:
		out["position_ms"] = e.PositionMs
	case app.SeekSynced:
		out["position_ms"] = e.PositionMs
	case app.LoginStarted:
		out["username"] = e.Username
	case app.BrowserEvent:
		switch be := e.Event.(type) {
		case browser.ContentAppended:
			out["count"] = be.Count
		case browser.SearchStarted:
			out["query"] = be.Query
		case browser.ContentSet:
		}
	case app.TrackResumed, app.TrackPaused, app.PlaylistChanged, app.LoginCompleted, app.Started:
	}

	return out
}
