package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestVisibilityApply(t *testing.T) {
	t.Run("guest hides violated only", func(t *testing.T) {
		filter := GuestVisibility().Apply(bson.M{"role": "Realtor"}, "_id")

		assert.Equal(t, bson.M{"$ne": true}, filter["is_violated"])
		_, hasOwner := filter["_id"]
		assert.False(t, hasOwner)
		assert.Equal(t, "Realtor", filter["role"])
	})

	t.Run("blocked owners excluded on the given field", func(t *testing.T) {
		vis := Visibility{ExcludedOwnerIDs: []string{"u1", "u2"}, ExcludeViolated: true}
		filter := vis.Apply(bson.M{}, "created_by")

		assert.Equal(t, bson.M{"$nin": []string{"u1", "u2"}}, filter["created_by"])
		assert.Equal(t, bson.M{"$ne": true}, filter["is_violated"])
	})

	t.Run("nil filter starts fresh", func(t *testing.T) {
		filter := GuestVisibility().Apply(nil, "created_by")
		assert.NotNil(t, filter)
		assert.Equal(t, bson.M{"$ne": true}, filter["is_violated"])
	})
}
