package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casahub/backend/internal/models"
)

// EntityKind identifies a flaggable collection.
type EntityKind string

const (
	KindUser    EntityKind = "user"
	KindProject EntityKind = "project"
	KindPost    EntityKind = "post"
)

// ModerationService runs the flag lifecycle over every flaggable collection:
// duplicate-guarded append, threshold flip to violated, administrative clear.
// All mutations are atomic server-side updates so concurrent flaggers cannot
// lose increments.
type ModerationService struct {
	collections map[EntityKind]*mongo.Collection
	notFound    map[EntityKind]error
}

func NewModerationService(db *mongo.Database) *ModerationService {
	return &ModerationService{
		collections: map[EntityKind]*mongo.Collection{
			KindUser:    db.Collection(colUsers),
			KindProject: db.Collection(colProjects),
			KindPost:    db.Collection(colPosts),
		},
		notFound: map[EntityKind]error{
			KindUser:    ErrUserNotFound,
			KindProject: ErrProjectNotFound,
			KindPost:    ErrPostNotFound,
		},
	}
}

func (s *ModerationService) collection(kind EntityKind) (*mongo.Collection, error) {
	col, ok := s.collections[kind]
	if !ok {
		return nil, fmt.Errorf("moderation: unknown entity kind %q", kind)
	}
	return col, nil
}

// Flag appends one flag by flaggedBy and increments the counter in a single
// guarded update: the filter only matches when no flag by this actor exists
// yet, so the append and the duplicate check cannot race. When the counter
// reaches the threshold a second conditional update marks the entity
// violated; re-flagging past the threshold keeps it true.
func (s *ModerationService) Flag(ctx context.Context, kind EntityKind, entityID, flaggedBy, reason string) (*models.FlagState, error) {
	col, err := s.collection(kind)
	if err != nil {
		return nil, err
	}

	flag := models.Flag{
		FlaggedBy: flaggedBy,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}

	res, err := col.UpdateOne(ctx, flagGuard(entityID, flaggedBy), flagPush(flag))
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		// Either the entity is missing or this actor already flagged it.
		n, err := col.CountDocuments(ctx, bson.M{"_id": entityID})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, s.notFound[kind]
		}
		return nil, ErrDuplicateFlag
	}

	if _, err := col.UpdateOne(ctx, violationGuard(entityID), violationSet()); err != nil {
		return nil, err
	}

	return s.state(ctx, col, kind, entityID)
}

// flagGuard matches the entity only while flaggedBy has not flagged it yet,
// so the duplicate check and the append cannot race.
func flagGuard(entityID, flaggedBy string) bson.M {
	return bson.M{
		"_id":              entityID,
		"flags.flagged_by": bson.M{"$ne": flaggedBy},
	}
}

func flagPush(flag models.Flag) bson.M {
	return bson.M{
		"$push": bson.M{"flags": flag},
		"$inc":  bson.M{"flag_count": 1},
	}
}

// violationGuard matches once the counter has reached the threshold. Below it
// the flip is a no-op; at or past it the entity is (or stays) violated.
func violationGuard(entityID string) bson.M {
	return bson.M{"_id": entityID, "flag_count": bson.M{"$gte": models.FlagThreshold}}
}

func violationSet() bson.M {
	return bson.M{"$set": bson.M{"is_violated": true}}
}

// clearReset wipes the flag list, zeroes the counter and lifts the violation
// in one update.
func clearReset() bson.M {
	return bson.M{"$set": bson.M{
		"flags":       []models.Flag{},
		"flag_count":  0,
		"is_violated": false,
	}}
}

// ClearFlags resets the moderation block unconditionally. Safe to call on an
// already-clear entity. Callers gate this behind moderator privileges.
func (s *ModerationService) ClearFlags(ctx context.Context, kind EntityKind, entityID string) (*models.FlagState, error) {
	col, err := s.collection(kind)
	if err != nil {
		return nil, err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": entityID}, clearReset())
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, s.notFound[kind]
	}

	return s.state(ctx, col, kind, entityID)
}

func (s *ModerationService) state(ctx context.Context, col *mongo.Collection, kind EntityKind, entityID string) (*models.FlagState, error) {
	var state models.FlagState
	err := col.FindOne(ctx, bson.M{"_id": entityID},
		options.FindOne().SetProjection(bson.M{"flags": 1, "flag_count": 1, "is_violated": 1}),
	).Decode(&state)
	if err == mongo.ErrNoDocuments {
		return nil, s.notFound[kind]
	}
	if err != nil {
		return nil, err
	}
	if state.Flags == nil {
		state.Flags = []models.Flag{}
	}
	return &state, nil
}
