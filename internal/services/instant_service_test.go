package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/backend/internal/models"
)

func TestFindSubcategory(t *testing.T) {
	subs := []models.InstantSubcategory{
		{Title: "AC"},
		{Title: "Refrigerator"},
	}

	sub := findSubcategory(subs, "Refrigerator")
	require.NotNil(t, sub)
	assert.Equal(t, "Refrigerator", sub.Title)

	assert.Nil(t, findSubcategory(subs, "Washing Machine"))
}

func TestServicePrice(t *testing.T) {
	sub := &models.InstantSubcategory{
		Title:       "AC",
		ServiceType: []string{"Installation", "Repair and Service"},
		Price: map[string]string{
			"Installation":       "1500",
			"Repair and Service": "",
		},
	}

	t.Run("offered type with a price", func(t *testing.T) {
		price, ok := servicePrice(sub, "Installation")
		assert.True(t, ok)
		assert.Equal(t, "1500", price)
	})

	t.Run("offered type without a price is invalid", func(t *testing.T) {
		_, ok := servicePrice(sub, "Repair and Service")
		assert.False(t, ok)
	})

	t.Run("type not offered is invalid even if priced", func(t *testing.T) {
		priced := &models.InstantSubcategory{
			ServiceType: []string{"Installation"},
			Price:       map[string]string{"Uninstallation": "500"},
		}
		_, ok := servicePrice(priced, "Uninstallation")
		assert.False(t, ok)
	})
}
