package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumbani/internal/domains/property/model"
	"nyumbani/internal/domains/property/search"
)

func makeProps(n int) []model.Property {
	props := make([]model.Property, 0, n)
	for i := 0; i < n; i++ {
		props = append(props, model.Property{Title: fmt.Sprintf("p%02d", i)})
	}

	return props
}

func TestWindow_InitialSearchPage(t *testing.T) {
	window := search.NewWindow(search.SearchPageSize)

	visible, hasMore := window.Slice(makeProps(30))

	assert.Len(t, visible, 12)
	assert.True(t, hasMore)
}

func TestWindow_InitialBrowsePage(t *testing.T) {
	window := search.NewWindow(search.BrowsePageSize)

	visible, hasMore := window.Slice(makeProps(30))

	assert.Len(t, visible, 9)
	assert.True(t, hasMore)
}

func TestWindow_ExtendAddsLoadMoreStep(t *testing.T) {
	window := search.NewWindow(search.SearchPageSize).Extend()

	assert.Equal(t, 20, window.Size())

	visible, hasMore := window.Slice(makeProps(30))

	assert.Len(t, visible, 20)
	assert.True(t, hasMore)
}

func TestWindow_SliceExhaustsResults(t *testing.T) {
	window := search.NewWindow(search.SearchPageSize)

	visible, hasMore := window.Slice(makeProps(7))

	assert.Len(t, visible, 7)
	assert.False(t, hasMore)
}

func TestWindow_ExactBoundaryHasNoMore(t *testing.T) {
	window := search.NewWindow(search.SearchPageSize)

	visible, hasMore := window.Slice(makeProps(12))

	assert.Len(t, visible, 12)
	assert.False(t, hasMore)
}

func TestWindow_ResetAfterNewResults(t *testing.T) {
	window := search.NewWindow(search.SearchPageSize).Extend().Extend()

	window = window.Reset(search.BrowsePageSize)

	assert.Equal(t, 9, window.Size())
}

func TestWindow_NegativeInitialClampsToZero(t *testing.T) {
	window := search.NewWindow(-5)

	assert.Equal(t, 0, window.Size())
}
