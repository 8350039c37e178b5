package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/casahub/backend/internal/models"
)

// matchesCount mirrors the server-side evaluation of the violation guard for
// a given flag count.
func matchesCount(t *testing.T, guard bson.M, count int) bool {
	t.Helper()
	cond, ok := guard["flag_count"].(bson.M)
	require.True(t, ok)
	threshold, ok := cond["$gte"].(int)
	require.True(t, ok)
	return count >= threshold
}

func TestFlagGuard(t *testing.T) {
	guard := flagGuard("post-1", "u1")

	t.Run("scoped to the entity", func(t *testing.T) {
		assert.Equal(t, "post-1", guard["_id"])
	})

	t.Run("excludes repeat flaggers", func(t *testing.T) {
		assert.Equal(t, bson.M{"$ne": "u1"}, guard["flags.flagged_by"])
	})
}

func TestFlagPush(t *testing.T) {
	flag := models.Flag{FlaggedBy: "u1", Reason: "spam", Timestamp: time.Now().UTC()}
	update := flagPush(flag)

	assert.Equal(t, bson.M{"flags": flag}, update["$push"])
	assert.Equal(t, bson.M{"flag_count": 1}, update["$inc"])
}

func TestViolationGuard(t *testing.T) {
	guard := violationGuard("post-1")
	assert.Equal(t, "post-1", guard["_id"])

	t.Run("below the threshold nothing flips", func(t *testing.T) {
		assert.False(t, matchesCount(t, guard, models.FlagThreshold-1))
	})

	t.Run("flips on the fifth distinct flag", func(t *testing.T) {
		assert.Equal(t, 5, models.FlagThreshold)
		assert.True(t, matchesCount(t, guard, models.FlagThreshold))
	})

	t.Run("stays violated past the threshold", func(t *testing.T) {
		assert.True(t, matchesCount(t, guard, models.FlagThreshold+3))
	})

	t.Run("flip only ever sets violated", func(t *testing.T) {
		assert.Equal(t, bson.M{"$set": bson.M{"is_violated": true}}, violationSet())
	})
}

func TestClearReset(t *testing.T) {
	update := clearReset()

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []models.Flag{}, set["flags"])
	assert.Equal(t, 0, set["flag_count"])
	assert.Equal(t, false, set["is_violated"])
}
