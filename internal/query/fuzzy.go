package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuzzyPattern builds a case-insensitive subsequence pattern from q: every
// character must appear in order, with anything between ("wd" matches "wood").
// Each character is escaped individually, so regex metacharacters in q are
// matched literally and can never malform the pattern. This is the single
// construction point for fuzzy patterns; query code must not build its own.
func FuzzyPattern(q string) string {
	runes := []rune(q)
	parts := make([]string, 0, len(runes))
	for _, r := range runes {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(parts, ".*")
}

// FuzzyRegex wraps FuzzyPattern as a Mongo regex value.
func FuzzyRegex(q string) primitive.Regex {
	return primitive.Regex{Pattern: FuzzyPattern(q), Options: "i"}
}

// FuzzyOr matches the fuzzy pattern against any of the given document fields.
func FuzzyOr(q string, fields ...string) bson.M {
	re := FuzzyRegex(q)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}
