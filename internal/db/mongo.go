package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials Mongo and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(dctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the uniqueness constraints the engine's dedup and
// monotonicity guarantees lean on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	for coll, keys := range map[string]bson.D{
		"transactions":         {{Key: "session_id", Value: 1}},
		"slots":                {{Key: "date", Value: 1}, {Key: "start_time", Value: 1}, {Key: "slot_type", Value: 1}},
		"hourly_bookings":      {{Key: "booking_code", Value: 1}},
		"referral_redemptions": {{Key: "referred_user_id", Value: 1}},
		"referral_codes":       {{Key: "code", Value: 1}},
		"loyalty_ledger":       {{Key: "user_id", Value: 1}, {Key: "ref_type", Value: 1}, {Key: "ref_id", Value: 1}},
	} {
		_, err := database.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: unique})
		if err != nil {
			return err
		}
	}
	return nil
}
