package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControls(t *testing.T) {
	t.Run("Should disable first and prev on the first page", func(t *testing.T) {
		nav := Controls(1, 10)

		assert.Equal(t, []int{1, 2, 3, 4, 5}, nav.Pages)
		assert.False(t, nav.First)
		assert.False(t, nav.Prev)
		assert.True(t, nav.Next)
		assert.True(t, nav.Last)
	})

	t.Run("Should disable next and last on the last page", func(t *testing.T) {
		nav := Controls(10, 10)

		assert.Equal(t, []int{6, 7, 8, 9, 10}, nav.Pages)
		assert.True(t, nav.First)
		assert.True(t, nav.Prev)
		assert.False(t, nav.Next)
		assert.False(t, nav.Last)
	})

	t.Run("Should center the window on the current page", func(t *testing.T) {
		assert.Equal(t, []int{3, 4, 5, 6, 7}, Controls(5, 10).Pages)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, Controls(2, 10).Pages)
		assert.Equal(t, []int{6, 7, 8, 9, 10}, Controls(9, 10).Pages)
	})

	t.Run("Should not run past a short range", func(t *testing.T) {
		nav := Controls(2, 3)

		assert.Equal(t, []int{1, 2, 3}, nav.Pages)
	})

	t.Run("Should disable everything for a single page or none", func(t *testing.T) {
		one := Controls(1, 1)
		assert.Equal(t, []int{1}, one.Pages)
		assert.False(t, one.First || one.Prev || one.Next || one.Last)

		none := Controls(1, 0)
		assert.Empty(t, none.Pages)
		assert.False(t, none.First || none.Prev || none.Next || none.Last)
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	t.Run("Should slice the requested window", func(t *testing.T) {
		res := Paginate(items, 2, 3)

		assert.Equal(t, []int{4, 5, 6}, res.Items)
		assert.Equal(t, 3, res.PageCount)
		assert.Equal(t, 7, res.Total)
	})

	t.Run("Should return the short last page", func(t *testing.T) {
		assert.Equal(t, []int{7}, Paginate(items, 3, 3).Items)
	})

	t.Run("Should clamp an out of range page", func(t *testing.T) {
		res := Paginate(items, 9, 3)

		assert.Equal(t, 3, res.Page)
		assert.Equal(t, []int{7}, res.Items)
	})

	t.Run("Should handle an empty set", func(t *testing.T) {
		res := Paginate([]int{}, 4, 3)

		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 0, res.PageCount)
		assert.Empty(t, res.Items)
	})
}

func TestQueryNormalize(t *testing.T) {
	t.Run("Should apply defaults and clamp page size", func(t *testing.T) {
		q := Query{PageSize: 1000, Search: "  villa "}.Normalize(DefaultServerPageSize)

		assert.Equal(t, 1, q.Page)
		assert.Equal(t, MaxPageSize, q.PageSize)
		assert.Equal(t, SortCreatedAt, q.Sort)
		assert.True(t, q.Desc)
		assert.Equal(t, "villa", q.Search)
	})

	t.Run("Should keep an explicit ascending sort", func(t *testing.T) {
		q := Query{Sort: SortPrice}.Normalize(DefaultServerPageSize)

		assert.Equal(t, SortPrice, q.Sort)
		assert.False(t, q.Desc)
		assert.Equal(t, DefaultServerPageSize, q.PageSize)
	})
}
