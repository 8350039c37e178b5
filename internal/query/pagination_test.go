package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := ParsePagination("", "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, int64(0), p.Skip)
	})

	t.Run("explicit values", func(t *testing.T) {
		p := ParsePagination("3", "10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, int64(20), p.Skip)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		p := ParsePagination("abc", "-5")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("zero page falls back to one", func(t *testing.T) {
		p := ParsePagination("0", "20")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, int64(0), p.Skip)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10)) // last page holds the remaining 5
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestOutOfRange(t *testing.T) {
	t.Run("page past the last page", func(t *testing.T) {
		p := ParsePagination("5", "10")
		assert.True(t, p.OutOfRange(3))
	})

	t.Run("last page is in range", func(t *testing.T) {
		p := ParsePagination("3", "10")
		assert.False(t, p.OutOfRange(3))
	})

	t.Run("empty result set never out of range", func(t *testing.T) {
		p := ParsePagination("7", "10")
		assert.False(t, p.OutOfRange(0))
	})
}

func TestParseSort(t *testing.T) {
	t.Run("default newest first", func(t *testing.T) {
		assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, ParseSort("", ""))
	})

	t.Run("ascending by field", func(t *testing.T) {
		assert.Equal(t, bson.D{{Key: "cost", Value: 1}}, ParseSort("cost", "asc"))
	})

	t.Run("anything but asc sorts descending", func(t *testing.T) {
		assert.Equal(t, bson.D{{Key: "title", Value: -1}}, ParseSort("title", "whatever"))
	})
}
