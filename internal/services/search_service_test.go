package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

func TestAttachProjects(t *testing.T) {
	users := []models.User{
		{ID: "u1", Role: models.RoleRealtor},
		{ID: "u2", Role: models.RoleProfessional},
	}
	projects := []models.Project{
		{ID: "p1", CreatedByID: "u1"},
		{ID: "p2", CreatedByID: "u1"},
	}

	out := attachProjects(users, projects)
	require.Len(t, out, 2)

	assert.Len(t, out[0].Projects, 2)
	assert.Equal(t, "p1", out[0].Projects[0].ID)

	// Owner with no matches still gets an empty slice, not nil.
	assert.NotNil(t, out[1].Projects)
	assert.Empty(t, out[1].Projects)

	for _, u := range out {
		assert.NotNil(t, u.Products)
		assert.Empty(t, u.Products)
	}
}

func TestAttachProducts(t *testing.T) {
	sellers := []models.User{
		{ID: "s1", Role: models.RoleProductSeller},
		{ID: "s2", Role: models.RoleProductSeller},
	}
	products := []models.Product{
		{ID: "pr1", CreatedByID: "s2"},
	}

	out := attachProducts(sellers, products)
	require.Len(t, out, 2)

	assert.Empty(t, out[0].Products)
	assert.NotNil(t, out[0].Products)
	require.Len(t, out[1].Products, 1)
	assert.Equal(t, "pr1", out[1].Products[0].ID)

	for _, s := range out {
		assert.NotNil(t, s.Projects)
	}
}

func TestSection(t *testing.T) {
	p := query.ParsePagination("2", "10")

	t.Run("totals come from the full count", func(t *testing.T) {
		sec := section([]models.Brand{{ID: "b1"}}, p, 25)
		assert.Equal(t, 2, sec.CurrentPage)
		assert.Equal(t, 3, sec.TotalPages)
		assert.Equal(t, int64(25), sec.TotalResults)
	})

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		sec := section[models.Brand](nil, p, 0)
		data, ok := sec.Data.([]models.Brand)
		require.True(t, ok)
		assert.NotNil(t, data)
		assert.Empty(t, data)
		assert.Equal(t, 0, sec.TotalPages)
	})
}
