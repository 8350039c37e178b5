package models

import "time"

// FlagThreshold is the number of distinct flags at which an entity is
// automatically marked violated.
const FlagThreshold = 5

// Flag is one moderation report against an entity. Append-only; a given user
// may flag a given entity at most once.
type Flag struct {
	FlaggedBy string    `json:"flaggedBy" bson:"flagged_by"`
	Reason    string    `json:"reason" bson:"reason"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// FlagState is the moderation block embedded in every flaggable entity.
// FlagCount always equals len(Flags); IsViolated flips true when FlagCount
// reaches FlagThreshold and is reset only by an administrative clear.
type FlagState struct {
	Flags      []Flag `json:"flags" bson:"flags"`
	FlagCount  int    `json:"flagCount" bson:"flag_count"`
	IsViolated bool   `json:"isViolated" bson:"is_violated"`
}

type FlagRequest struct {
	Reason string `json:"reason"`
}

func (r *FlagRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Reason == "" {
		errors["reason"] = "Reason is required"
	}

	return errors
}
