package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/casahub/backend/internal/models"
)

func TestMergeCompanyDetails(t *testing.T) {
	existing := models.CompanyDetails{
		CompanyName:  "Acme Interiors",
		CompanyEmail: "old@acme.example",
		CompanyPhone: "9999999999",
		Experience:   8,
		CompanyAddress: models.CompanyAddress{
			Place:   "Kochi",
			Pincode: 682001,
		},
	}

	t.Run("empty update keeps everything", func(t *testing.T) {
		merged := mergeCompanyDetails(existing, models.CompanyDetails{})
		assert.Equal(t, existing, merged)
	})

	t.Run("fields replace individually", func(t *testing.T) {
		merged := mergeCompanyDetails(existing, models.CompanyDetails{
			CompanyName: "Acme Studios",
			CompanyAddress: models.CompanyAddress{
				Pincode: 682002,
			},
		})
		assert.Equal(t, "Acme Studios", merged.CompanyName)
		assert.Equal(t, 682002, merged.CompanyAddress.Pincode)
		assert.Equal(t, "Kochi", merged.CompanyAddress.Place)
		assert.Equal(t, "old@acme.example", merged.CompanyEmail)
	})

	t.Run("invalid email is ignored", func(t *testing.T) {
		merged := mergeCompanyDetails(existing, models.CompanyDetails{CompanyEmail: "not-an-email"})
		assert.Equal(t, "old@acme.example", merged.CompanyEmail)
	})
}

func TestSetNonEmpty(t *testing.T) {
	set := bson.M{}
	setNonEmpty(set, "fname", "Maya")
	setNonEmpty(set, "lname", "")

	assert.Equal(t, "Maya", set["fname"])
	_, has := set["lname"]
	assert.False(t, has)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "", "c", "b"}))
	assert.Empty(t, dedupe(nil))
}

func TestContains(t *testing.T) {
	assert.True(t, contains([]string{"x", "y"}, "y"))
	assert.False(t, contains([]string{"x", "y"}, "z"))
	assert.False(t, contains(nil, "x"))
}
