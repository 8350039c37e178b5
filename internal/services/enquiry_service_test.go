package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestOpenEnquiryFilter(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pincode unlocks the fresh window", func(t *testing.T) {
		filter := openEnquiryFilter("682001", "", cutoff)

		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 2)

		assert.Equal(t, bson.M{"created_at": bson.M{"$lt": cutoff}}, or[0])
		assert.Equal(t, bson.M{
			"created_at": bson.M{"$gte": cutoff},
			"pincode":    "682001",
		}, or[1])
	})

	t.Run("no pincode sees older enquiries only", func(t *testing.T) {
		filter := openEnquiryFilter("", "", cutoff)

		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 1)
		assert.Equal(t, bson.M{"created_at": bson.M{"$lt": cutoff}}, or[0])
	})

	t.Run("type narrows the result", func(t *testing.T) {
		filter := openEnquiryFilter("682001", "doors", cutoff)
		assert.Equal(t, "doors", filter["type"])

		_, present := openEnquiryFilter("682001", "", cutoff)["type"]
		assert.False(t, present)
	})
}
