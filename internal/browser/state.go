// Package browser holds the album browser sub-state and its reducer.
package browser

// Album is a browsable album entry.
type Album struct {
	URI      string `json:"uri"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

// State is the browser's content and search query.
type State struct {
	Albums []Album
	Query  string
}

// NewState returns an empty browser state.
func NewState() *State {
	return &State{}
}

// UpdateWith applies an action to the state and returns the resulting events.
func (s *State) UpdateWith(action Action) []Event {
	switch a := action.(type) {
	case SetContent:
		s.Albums = a.Albums
		return []Event{ContentSet{}}
	case AppendContent:
		if len(a.Albums) == 0 {
			return nil
		}
		s.Albums = append(s.Albums, a.Albums...)
		return []Event{ContentAppended{Count: len(a.Albums)}}
	case Search:
		s.Query = a.Query
		s.Albums = nil
		return []Event{SearchStarted{Query: a.Query}, ContentSet{}}
	case ClearContent:
		s.Albums = nil
		s.Query = ""
		return []Event{ContentSet{}}
	}
	return nil
}
