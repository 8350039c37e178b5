package services

import (
	"context"
	"crypto/tls"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo collection names.
const (
	colUsers             = "users"
	colProjects          = "projects"
	colPosts             = "posts"
	colProducts          = "products"
	colBrands            = "brands"
	colCategories        = "categories"
	colOrders            = "orders"
	colSubscriptionPlans = "subscription_plans"
	colInstantCategories = "instant_categories"
	colInstantServices   = "instant_services"
	colEnquiries         = "enquiries"
	colOTPs              = "otps"
	colDeletionLogs      = "deletion_logs"
)

// ConnectMongo opens the shared client used by every service.
func ConnectMongo(ctx context.Context, mongoURI, dbName string) (*mongo.Database, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	ensureIndexes(ctx, db)

	log.Printf("MongoDB connected: db=%s", dbName)
	return db, nil
}

// ensureIndexes creates the indexes the listing and search paths rely on.
// Best-effort: failures are ignored, queries still work unindexed.
func ensureIndexes(ctx context.Context, db *mongo.Database) {
	_, _ = db.Collection(colUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "is_violated", Value: 1}}},
	})
	_, _ = db.Collection(colProjects).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_violated", Value: 1}}},
	})
	_, _ = db.Collection(colPosts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	_, _ = db.Collection(colProducts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	_, _ = db.Collection(colOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "razorpay_order_id", Value: 1}}},
	})
	_, _ = db.Collection(colOTPs).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone_number", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	_, _ = db.Collection(colEnquiries).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "pincode", Value: 1}, {Key: "created_at", Value: -1}}},
	})
}
