package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

func TestWritePage(t *testing.T) {
	info := models.PageInfo{CurrentPage: 5, TotalPages: 3, TotalResults: 25}

	t.Run("out of range is a client error that keeps the totals", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writePage(rec, []string{}, info, services.ErrPageOutOfRange, "failed")

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
			Data    struct {
				Data         []string `json:"data"`
				CurrentPage  int      `json:"currentPage"`
				TotalPages   int      `json:"totalPages"`
				TotalResults int64    `json:"totalResults"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
		assert.Empty(t, resp.Data.Data)
		assert.Equal(t, 5, resp.Data.CurrentPage)
		assert.Equal(t, 3, resp.Data.TotalPages)
		assert.Equal(t, int64(25), resp.Data.TotalResults)
	})

	t.Run("other errors are server errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writePage(rec, nil, models.PageInfo{}, errors.New("boom"), "failed to list")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to list")
	})

	t.Run("success wraps data with page info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writePage(rec, []string{"a", "b"}, models.PageInfo{CurrentPage: 1, TotalPages: 1, TotalResults: 2}, nil, "failed")

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Data       []string `json:"data"`
				TotalPages int      `json:"totalPages"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"a", "b"}, resp.Data.Data)
		assert.Equal(t, 1, resp.Data.TotalPages)
	})
}

func TestPaginationFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=20", nil)
	p := pagination(req)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(40), p.Skip)
}
