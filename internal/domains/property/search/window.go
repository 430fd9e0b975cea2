package search

import "nyumbani/internal/domains/property/model"

const (
	// SearchPageSize is the initial window on the search results surface.
	SearchPageSize = 12
	// BrowsePageSize is the initial window on the browse grid.
	BrowsePageSize = 9
	// LoadMoreStep is how many rows each "load more" reveals.
	LoadMoreStep = 8
)

// Window tracks how many result rows are currently visible. It grows in
// LoadMoreStep increments and never shrinks on its own.
type Window struct {
	size int
}

func NewWindow(initial int) Window {
	if initial < 0 {
		initial = 0
	}

	return Window{size: initial}
}

func (w Window) Size() int {
	return w.size
}

// Extend returns a window grown by one load-more step.
func (w Window) Extend() Window {
	return Window{size: w.size + LoadMoreStep}
}

// Reset returns a window back at the given initial size, for when the
// result set changes under the viewer.
func (w Window) Reset(initial int) Window {
	return NewWindow(initial)
}

// Slice cuts the visible portion out of the full result set and reports
// whether more rows remain beyond the window.
func (w Window) Slice(props []model.Property) (visible []model.Property, hasMore bool) {
	if w.size >= len(props) {
		return props, false
	}

	return props[:w.size], true
}
