package models

import "time"

// LedgerEntry is immutable once written. (UserID, RefType, RefID) is the
// natural dedup key, enforced with a unique index.
type LedgerEntry struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	PointsDelta int        `bson:"points_delta" json:"points_delta"`
	Reason      string     `bson:"reason" json:"reason"`
	RefType     string     `bson:"ref_type" json:"ref_type"`
	RefID       string     `bson:"ref_id" json:"ref_id"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}

// Balance is materialized: always the sum of the user's deltas that are
// either negative or not yet expired, rewritten together with every insert.
type Balance struct {
	UserID          string    `bson:"_id" json:"user_id"`
	PointsAvailable int       `bson:"points_available" json:"points_available"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type RedemptionStatus string

const (
	RedemptionPending RedemptionStatus = "pending"
	RedemptionAwarded RedemptionStatus = "awarded"
)

type ReferralRedemption struct {
	ID             string           `bson:"_id" json:"id"`
	ReferrerUserID string           `bson:"referrer_user_id" json:"referrer_user_id"`
	ReferredUserID string           `bson:"referred_user_id" json:"referred_user_id"` // unique
	Status         RedemptionStatus `bson:"status" json:"status"`
	RedeemedAt     time.Time        `bson:"redeemed_at" json:"redeemed_at"`
}

type ReferralCode struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`
	Code   string `bson:"code" json:"code"`
}
