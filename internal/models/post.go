package models

import "time"

type PriceDetails struct {
	Amount     float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	Unit       string  `json:"unit,omitempty" bson:"unit,omitempty"`
	Negotiable bool    `json:"negotiable,omitempty" bson:"negotiable,omitempty"`
}

type Post struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Captions    string       `json:"captions,omitempty" bson:"captions,omitempty"`
	Tags        []string     `json:"tags,omitempty" bson:"tags,omitempty"`
	Location    string       `json:"location,omitempty" bson:"location,omitempty"`
	Price       PriceDetails `json:"priceDetails,omitempty" bson:"price_details,omitempty"`
	Images      []string     `json:"images,omitempty" bson:"images,omitempty"`
	CreatedByID string       `json:"createdById" bson:"created_by"`
	CreatedBy   *User        `json:"createdBy,omitempty" bson:"-"`
	FlagState   `bson:",inline"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type CreatePostRequest struct {
	Title    string       `json:"title"`
	Captions string       `json:"captions"`
	Tags     []string     `json:"tags"`
	Location string       `json:"location"`
	Price    PriceDetails `json:"priceDetails"`
	Images   []string     `json:"images"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}

	return errors
}

// Admin decisions on a flagged post.
const (
	FlagActionDelete = "delete"
	FlagActionIgnore = "ignore"
)

// HandleFlaggedPostRequest is the admin decision on a flagged post.
type HandleFlaggedPostRequest struct {
	PostID string `json:"postId"`
	Action string `json:"action"` // "delete" or "ignore"
}

func (r *HandleFlaggedPostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.PostID == "" {
		errors["postId"] = "Post ID is required"
	}
	if r.Action != FlagActionDelete && r.Action != FlagActionIgnore {
		errors["action"] = "Action must be delete or ignore"
	}

	return errors
}
