package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

type LoyaltyDB struct {
	client   *mongo.Client
	ledger   *mongo.Collection
	balances *mongo.Collection
	logger   *zap.Logger
}

func NewLoyaltyDB(client *mongo.Client, database *mongo.Database, logger *zap.Logger) *LoyaltyDB {
	return &LoyaltyDB{
		client:   client,
		ledger:   database.Collection("loyalty_ledger"),
		balances: database.Collection("loyalty_balances"),
		logger:   logger,
	}
}

// Award appends the ledger entry and rewrites the materialized balance in a
// single multi-document transaction; either both apply or neither does. A
// prior entry with the same (refType, refId) is a no-op for the caller.
func (l *LoyaltyDB) Award(ctx context.Context, entry models.LedgerEntry) error {
	existing, err := l.ledger.CountDocuments(ctx,
		bson.M{"user_id": entry.UserID, "ref_type": entry.RefType, "ref_id": entry.RefID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return fmt.Errorf("check ledger reference: %w", err)
	}
	if existing > 0 {
		return models.ErrAlreadyAwarded
	}

	session, err := l.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if _, err := l.ledger.InsertOne(sc, entry); err != nil {
			return nil, err
		}

		total, err := l.sumAvailable(sc, entry.UserID)
		if err != nil {
			return nil, err
		}

		_, err = l.balances.UpdateOne(sc,
			bson.M{"_id": entry.UserID},
			bson.M{"$set": bson.M{"points_available": total, "updated_at": time.Now()}},
			options.Update().SetUpsert(true),
		)
		return nil, err
	})
	if err != nil {
		// unique index on (user_id, ref_type, ref_id) closes the race
		// between the pre-check and the insert
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrAlreadyAwarded
		}
		return fmt.Errorf("award points: %w", err)
	}
	return nil
}

// sumAvailable recomputes the balance as the sum of deltas that are either
// negative (spends always count) or not yet expired.
func (l *LoyaltyDB) sumAvailable(ctx context.Context, userID string) (int, error) {
	cursor, err := l.ledger.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"points_delta": bson.M{"$lt": 0}},
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": time.Now()}},
		}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$points_delta"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var summary struct {
		Total int `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&summary); err != nil {
			return 0, err
		}
	}
	if summary.Total < 0 {
		return 0, nil
	}
	return summary.Total, nil
}

func (l *LoyaltyDB) GetBalance(ctx context.Context, userID string) (models.Balance, error) {
	var balance models.Balance
	err := l.balances.FindOne(ctx, bson.M{"_id": userID}).Decode(&balance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Balance{UserID: userID}, nil
		}
		return models.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}
