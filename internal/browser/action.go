package browser

// Action is an intent handled by State.UpdateWith.
//
//sumtype:decl
type Action interface {
	ActionType() string
	isAction()
}

// SetContent replaces the album list.
type SetContent struct {
	Albums []Album `json:"albums"`
}

// AppendContent adds albums to the end of the list, as when paging.
type AppendContent struct {
	Albums []Album `json:"albums"`
}

// Search starts a new query and clears the current albums.
type Search struct {
	Query string `json:"query"`
}

// ClearContent empties the albums and the query.
type ClearContent struct{}

func (SetContent) ActionType() string    { return "set_content" }
func (AppendContent) ActionType() string { return "append_content" }
func (Search) ActionType() string        { return "search" }
func (ClearContent) ActionType() string  { return "clear_content" }

func (SetContent) isAction()    {}
func (AppendContent) isAction() {}
func (Search) isAction()        {}
func (ClearContent) isAction()  {}

// Event is a notification produced by State.UpdateWith.
//
//sumtype:decl
type Event interface {
	EventType() string
	isEvent()
}

// ContentSet reports that the album list was replaced.
type ContentSet struct{}

// ContentAppended reports how many albums were appended.
type ContentAppended struct {
	Count int `json:"count"`
}

// SearchStarted reports a new query.
type SearchStarted struct {
	Query string `json:"query"`
}

func (ContentSet) EventType() string      { return "content_set" }
func (ContentAppended) EventType() string { return "content_appended" }
func (SearchStarted) EventType() string   { return "search_started" }

func (ContentSet) isEvent()      {}
func (ContentAppended) isEvent() {}
func (SearchStarted) isEvent()   {}
