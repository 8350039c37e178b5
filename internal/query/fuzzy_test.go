package query

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFuzzyPattern(t *testing.T) {
	t.Run("characters match in order with gaps", func(t *testing.T) {
		pattern := FuzzyPattern("wd")
		assert.Equal(t, "w.*d", pattern)

		re, err := regexp.Compile("(?i)" + pattern)
		require.NoError(t, err)
		assert.True(t, re.MatchString("wood"))
		assert.True(t, re.MatchString("Warm Door"))
		assert.False(t, re.MatchString("draw"))
	})

	t.Run("metacharacters are escaped", func(t *testing.T) {
		pattern := FuzzyPattern("a.c")
		re, err := regexp.Compile("(?i)" + pattern)
		require.NoError(t, err)
		assert.True(t, re.MatchString("a.bc"))
		assert.False(t, re.MatchString("abc"))
	})

	t.Run("hostile input still compiles", func(t *testing.T) {
		for _, q := range []string{"(", "[a-z", "**", `\`, "a|b"} {
			pattern := FuzzyPattern(q)
			_, err := regexp.Compile(pattern)
			assert.NoError(t, err, "input %q", q)
		}
	})

	t.Run("empty query produces empty pattern", func(t *testing.T) {
		assert.Equal(t, "", FuzzyPattern(""))
	})
}

func TestFuzzyRegex(t *testing.T) {
	re := FuzzyRegex("Ch")
	assert.Equal(t, "C.*h", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestFuzzyOr(t *testing.T) {
	filter := FuzzyOr("sofa", "name", "about")

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first, ok := or[0].(bson.M)
	require.True(t, ok)
	_, hasName := first["name"]
	assert.True(t, hasName)

	second, ok := or[1].(bson.M)
	require.True(t, ok)
	_, hasAbout := second["about"]
	assert.True(t, hasAbout)
}
