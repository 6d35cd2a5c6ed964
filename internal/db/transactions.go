package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

type TransactionDB struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewTransactionDB(database *mongo.Database, logger *zap.Logger) *TransactionDB {
	return &TransactionDB{database.Collection("transactions"), logger}
}

func (t *TransactionDB) Create(ctx context.Context, tx *models.Transaction) error {
	_, err := t.coll.InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("session %s: %w", tx.SessionID, models.ErrValidation)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (t *TransactionDB) FindBySession(ctx context.Context, sessionID string) (*models.Transaction, error) {
	return t.findOne(ctx, bson.M{"session_id": sessionID})
}

func (t *TransactionDB) FindBySessionForUser(ctx context.Context, sessionID, userID string) (*models.Transaction, error) {
	return t.findOne(ctx, bson.M{"session_id": sessionID, "user_id": userID})
}

func (t *TransactionDB) findOne(ctx context.Context, filter bson.M) (*models.Transaction, error) {
	var tx models.Transaction
	err := t.coll.FindOne(ctx, filter).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("transaction %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &tx, nil
}

// ApplyDecision records one processor delivery in a single conditional
// update. The filter excludes already-processed provider transaction ids and
// refuses to downgrade a paid transaction; the modified count tells the
// caller whether this delivery changed anything.
func (t *TransactionDB) ApplyDecision(ctx context.Context, sessionID, providerTxnID string, outcome models.Outcome, paymentID string) (bool, error) {
	filter := bson.M{
		"session_id":                 sessionID,
		"processed_provider_txn_ids": bson.M{"$ne": providerTxnID},
	}
	if outcome != models.OutcomePaid {
		// monotonic rule: paid never reverts
		filter["status"] = bson.M{"$ne": models.StatusPaid}
	}

	set := bson.M{
		"status":     statusForOutcome(outcome),
		"updated_at": time.Now(),
	}
	if paymentID != "" {
		set["payment_id"] = paymentID
	}

	res, err := t.coll.UpdateOne(ctx, filter, bson.M{
		"$set":      set,
		"$addToSet": bson.M{"processed_provider_txn_ids": providerTxnID},
	})
	if err != nil {
		return false, fmt.Errorf("apply decision: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func statusForOutcome(outcome models.Outcome) models.TransactionStatus {
	switch outcome {
	case models.OutcomePaid:
		return models.StatusPaid
	case models.OutcomeFailed:
		return models.StatusFailed
	default:
		return models.StatusPending
	}
}

// AcquireFinalization is the finalization lock CAS. Only a transaction that
// is paid and whose lock is absent, failed, or stale-processing matches;
// exactly one concurrent caller sees a modification.
func (t *TransactionDB) AcquireFinalization(ctx context.Context, sessionID string, staleBefore, now time.Time) (bool, error) {
	filter := bson.M{
		"session_id": sessionID,
		"status":     models.StatusPaid,
		"$or": []bson.M{
			{"finalization.status": bson.M{"$exists": false}},
			{"finalization.status": bson.M{"$in": []string{"", string(models.FinalizationFailed)}}},
			{
				"finalization.status":     models.FinalizationProcessing,
				"finalization.started_at": bson.M{"$lt": staleBefore},
			},
		},
	}

	res, err := t.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"finalization.status":     models.FinalizationProcessing,
			"finalization.started_at": now,
		},
		"$unset": bson.M{
			"finalization.completed_at": "",
			"finalization.error":        "",
		},
	})
	if err != nil {
		return false, fmt.Errorf("acquire finalization: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (t *TransactionDB) CompleteFinalization(ctx context.Context, sessionID string, result models.FinalizationResult, completedAt time.Time) error {
	res, err := t.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"finalization.status":       models.FinalizationSucceeded,
			"finalization.result":       result,
			"finalization.completed_at": completedAt,
			"updated_at":                completedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("complete finalization: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("transaction %w", models.ErrNotFound)
	}
	return nil
}

func (t *TransactionDB) FailFinalization(ctx context.Context, sessionID, cause string, completedAt time.Time) error {
	_, err := t.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"finalization.status":       models.FinalizationFailed,
			"finalization.error":        cause,
			"finalization.completed_at": completedAt,
			"updated_at":                completedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("fail finalization: %w", err)
	}
	return nil
}
