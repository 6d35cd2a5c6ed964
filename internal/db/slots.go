package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

type SlotDB struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewSlotDB(database *mongo.Database, logger *zap.Logger) *SlotDB {
	return &SlotDB{database.Collection("slots"), logger}
}

// Reserve performs the capacity check and the increment in one conditional
// update. A miss means full, wrong type or absent; callers cannot tell which
// without a follow-up read, which closes the check-then-use gap.
func (s *SlotDB) Reserve(ctx context.Context, slotID string, count int, slotType models.SlotType) error {
	if count < 1 {
		return fmt.Errorf("%w: reserve count must be positive", models.ErrValidation)
	}

	filter := bson.M{
		"_id":       slotID,
		"slot_type": slotType,
		"is_active": true,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$booked_count", count}},
			"$capacity",
		}},
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_count": count}})
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if res.ModifiedCount == 0 {
		return models.ErrSlotUnavailable
	}
	return nil
}

// Release decrements unconditionally. Compensation only: it is called after
// a downstream failure that followed a successful Reserve.
func (s *SlotDB) Release(ctx context.Context, slotID string, count int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": slotID},
		bson.M{"$inc": bson.M{"booked_count": -count}},
	)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

func (s *SlotDB) Find(ctx context.Context, slotID string) (*models.Slot, error) {
	var slot models.Slot
	err := s.coll.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("slot %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &slot, nil
}
