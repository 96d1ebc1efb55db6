package dispatch

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/browser"
)

// Formatter formats records for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. Invalid templates are ignored.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats a record as a string.
func (f *Formatter) Format(r Record) string {
	if f.template != nil {
		return f.formatTemplate(r)
	}
	return f.formatLine(r)
}

func (f *Formatter) formatLine(r Record) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, r.At.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(r.Event))
	}

	parts = append(parts, describeRecord(r))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(r Record) string {
	data := templateData{
		ID:        r.ID.String(),
		Seq:       r.Seq,
		Type:      eventTypeName(r.Event),
		Action:    r.Action,
		Emoji:     eventEmoji(r.Event),
		Text:      describeRecord(r),
		Timestamp: r.At,
		Time:      r.At.Format("15:04:05"),
	}
	if r.Track != nil {
		data.Track = r.Track.DisplayName()
	}

	switch e := r.Event.(type) {
	case app.TrackChanged:
		data.URI = e.URI
	case app.TrackSeeked:
		data.PositionMs = e.PositionMs
	case app.SeekSynced:
		data.PositionMs = e.PositionMs
	case app.LoginStarted:
		data.Username = e.Username
	case app.BrowserEvent:
		switch be := e.Event.(type) {
		case browser.ContentAppended:
			data.Count = be.Count
		case browser.SearchStarted:
			data.Query = be.Query
		case browser.ContentSet:
		}
	case app.TrackResumed, app.TrackPaused, app.PlaylistChanged, app.LoginCompleted, app.Started:
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(r)
	}
	return buf.String()
}

type templateData struct {
	ID         string
	Seq        uint64
	Type       string
	Action     string
	Emoji      string
	Text       string
	Timestamp  time.Time
	Time       string
	URI        string
	PositionMs int
	Username   string
	Track      string
	Count      int
	Query      string
}

// describeRecord is Describe, naming the track instead of its URI when the
// record carries the playlist entry that started playing.
func describeRecord(r Record) string {
	if e, ok := r.Event.(app.TrackChanged); ok && r.Track != nil && r.Track.URI == e.URI {
		if name := r.Track.DisplayName(); name != "" {
			return "Now playing: " + name
		}
	}
	return Describe(r.Event)
}

// Describe returns a human-readable description of an event.
func Describe(e app.Event) string {
	switch e := e.(type) {
	case app.TrackResumed:
		return "Resumed"
	case app.TrackPaused:
		return "Paused"
	case app.TrackChanged:
		return fmt.Sprintf("Now playing: %s", e.URI)
	case app.PlaylistChanged:
		return "Playlist changed"
	case app.LoginCompleted:
		return "Logged in"
	case app.TrackSeeked:
		return fmt.Sprintf("Seeked to %s", formatPosition(e.PositionMs))
	case app.SeekSynced:
		return fmt.Sprintf("Position %s", formatPosition(e.PositionMs))
	case app.Started:
		return "Started"
	case app.LoginStarted:
		return fmt.Sprintf("Logging in as %s", e.Username)
	case app.BrowserEvent:
		return describeBrowser(e.Event)
	default:
		return "Unknown event"
	}
}

func describeBrowser(e browser.Event) string {
	switch e := e.(type) {
	case browser.ContentSet:
		return "Browser content set"
	case browser.ContentAppended:
		return fmt.Sprintf("Browser loaded %d more albums", e.Count)
	case browser.SearchStarted:
		return fmt.Sprintf("Searching for %q", e.Query)
	default:
		return "Browser updated"
	}
}

// formatPosition renders milliseconds as m:ss.
func formatPosition(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func eventEmoji(e app.Event) string {
	switch e.(type) {
	case app.TrackResumed:
		return "▶️"
	case app.TrackPaused:
		return "⏸️"
	case app.TrackChanged:
		return "🎵"
	case app.PlaylistChanged:
		return "📃"
	case app.LoginCompleted, app.LoginStarted:
		return "🔑"
	case app.TrackSeeked, app.SeekSynced:
		return "⏩"
	case app.Started:
		return "🚀"
	case app.BrowserEvent:
		return "💿"
	default:
		return "❓"
	}
}

func eventTypeName(e app.Event) string {
	if e == nil {
		return "unknown"
	}
	return e.EventType()
}
