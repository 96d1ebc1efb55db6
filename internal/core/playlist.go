package core

// Successor returns the track immediately after the first track whose URI
// matches current. It returns false when current is nil, matches nothing, or
// matches the last track.
func Successor(playlist []Track, current *string) (*Track, bool) {
	if current == nil {
		return nil, false
	}
	i := IndexOf(playlist, *current)
	if i < 0 || i+1 >= len(playlist) {
		return nil, false
	}
	return &playlist[i+1], true
}

// Predecessor returns the track immediately before the first track whose URI
// matches current. It returns false when current is nil, matches nothing, or
// matches the first track.
func Predecessor(playlist []Track, current *string) (*Track, bool) {
	if current == nil {
		return nil, false
	}
	i := IndexOf(playlist, *current)
	if i <= 0 {
		return nil, false
	}
	return &playlist[i-1], true
}

// IndexOf returns the position of the first track with the given URI, or -1.
func IndexOf(playlist []Track, uri string) int {
	for i := range playlist {
		if playlist[i].URI == uri {
			return i
		}
	}
	return -1
}
