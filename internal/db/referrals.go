package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

type ReferralDB struct {
	redemptions *mongo.Collection
	codes       *mongo.Collection
	logger      *zap.Logger
}

func NewReferralDB(database *mongo.Database, logger *zap.Logger) *ReferralDB {
	return &ReferralDB{
		redemptions: database.Collection("referral_redemptions"),
		codes:       database.Collection("referral_codes"),
		logger:      logger,
	}
}

func (r *ReferralDB) CreateRedemption(ctx context.Context, redemption *models.ReferralRedemption) error {
	_, err := r.redemptions.InsertOne(ctx, redemption)
	if err != nil {
		// the referred user already redeemed a code once
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("redemption exists: %w", models.ErrValidation)
		}
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

// AwardPendingRedemption flips the referred user's redemption from pending
// to awarded. The status filter is the compare-and-swap guard: of two
// concurrent evaluators only one gets the document back.
func (r *ReferralDB) AwardPendingRedemption(ctx context.Context, referredUserID string) (*models.ReferralRedemption, error) {
	var redemption models.ReferralRedemption
	err := r.redemptions.FindOneAndUpdate(ctx,
		bson.M{"referred_user_id": referredUserID, "status": models.RedemptionPending},
		bson.M{"$set": bson.M{"status": models.RedemptionAwarded}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&redemption)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending redemption %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("award redemption: %w", err)
	}
	return &redemption, nil
}

func (r *ReferralDB) CodeForUser(ctx context.Context, userID string) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := r.codes.FindOne(ctx, bson.M{"user_id": userID}).Decode(&code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("referral code %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &code, nil
}

func (r *ReferralDB) FindCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	var found models.ReferralCode
	err := r.codes.FindOne(ctx, bson.M{"code": code}).Decode(&found)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("referral code %w", models.ErrNotFound)
		}
		return nil, err
	}
	return &found, nil
}

// InsertCode stores a freshly generated code; duplicate generation is
// reported so the caller can retry with a new code.
func (r *ReferralDB) InsertCode(ctx context.Context, code *models.ReferralCode) error {
	_, err := r.codes.InsertOne(ctx, code)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("code collision: %w", models.ErrValidation)
		}
		return fmt.Errorf("insert referral code: %w", err)
	}
	return nil
}
