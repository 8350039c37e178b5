package services

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Visibility is the exclusion criteria applied before any listing or search
// query: owners the viewer has blocked, and entities marked violated.
type Visibility struct {
	ExcludedOwnerIDs []string
	ExcludeViolated  bool
}

// Apply merges the exclusion criteria into filter. ownerField names the
// document field holding the owner reference ("_id" for user documents
// themselves, "created_by" for owned entities).
func (v Visibility) Apply(filter bson.M, ownerField string) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	if len(v.ExcludedOwnerIDs) > 0 {
		filter[ownerField] = bson.M{"$nin": v.ExcludedOwnerIDs}
	}
	if v.ExcludeViolated {
		filter["is_violated"] = bson.M{"$ne": true}
	}
	return filter
}

// GuestVisibility is what anonymous viewers get: violated entities hidden,
// nobody blocked.
func GuestVisibility() Visibility {
	return Visibility{ExcludeViolated: true}
}

type VisibilityService struct {
	users *mongo.Collection
}

func NewVisibilityService(db *mongo.Database) *VisibilityService {
	return &VisibilityService{users: db.Collection(colUsers)}
}

// Compute resolves the viewer's block list. Absent, unknown, or unreadable
// viewers degrade to guest visibility; public listing endpoints must never
// fail because of a bad viewer token.
func (s *VisibilityService) Compute(ctx context.Context, viewerID string) Visibility {
	if viewerID == "" {
		return GuestVisibility()
	}

	var viewer struct {
		BlockedUsers []string `bson:"blocked_users"`
	}
	if err := s.users.FindOne(ctx, bson.M{"_id": viewerID}).Decode(&viewer); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("[Visibility] viewer lookup failed viewer=%s err=%v", viewerID, err)
		}
		return GuestVisibility()
	}

	return Visibility{
		ExcludedOwnerIDs: viewer.BlockedUsers,
		ExcludeViolated:  true,
	}
}
