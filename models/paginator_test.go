package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatorOffset(t *testing.T) {
	for page := 1; page <= 10; page++ {
		p := NewPaginator(page, 5, 100)
		assert.Equal(t, (page-1)*5, p.Offset())
	}
}

func TestPaginatorClampsLowPages(t *testing.T) {
	for _, page := range []int{0, -1, -100} {
		p := NewPaginator(page, 5, 25)
		assert.Equal(t, 1, p.Page())
		assert.Equal(t, 0, p.Offset())
	}
}

func TestPaginatorClampsToLastPage(t *testing.T) {
	p := NewPaginator(99, 5, 12)
	assert.Equal(t, 3, p.Page())
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 3, p.TotalPages())
}

func TestPaginatorZeroTotal(t *testing.T) {
	p := NewPaginator(7, 5, 0)
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 1, p.TotalPages())
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestPaginatorTotalPagesRoundsUp(t *testing.T) {
	assert.Equal(t, 3, NewPaginator(1, 5, 11).TotalPages())
	assert.Equal(t, 2, NewPaginator(1, 5, 10).TotalPages())
	assert.Equal(t, 1, NewPaginator(1, 5, 5).TotalPages())
	assert.Equal(t, 1, NewPaginator(1, 5, 1).TotalPages())
}

func TestPaginatorNavigation(t *testing.T) {
	p := NewPaginator(2, 5, 15)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 3, p.NextPage())
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	last := NewPaginator(3, 5, 15)
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.NextPage())
}

func TestPaginatorZeroPerPage(t *testing.T) {
	p := NewPaginator(1, 0, 10)
	assert.Equal(t, 1, p.PerPage())
	assert.Equal(t, 10, p.TotalPages())
}
