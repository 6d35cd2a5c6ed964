package models

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TypeHourly       TransactionType = "hourly"
	TypeBirthday     TransactionType = "birthday"
	TypeSubscription TransactionType = "subscription"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPaid    TransactionStatus = "paid"
	StatusFailed  TransactionStatus = "failed"
	StatusExpired TransactionStatus = "expired"
)

// Outcome is the normalized processor decision for one delivery.
type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomePending Outcome = "pending"
	OutcomeFailed  Outcome = "failed"
)

type FinalizationStatus string

const (
	FinalizationNone       FinalizationStatus = ""
	FinalizationProcessing FinalizationStatus = "processing"
	FinalizationSucceeded  FinalizationStatus = "succeeded"
	FinalizationFailed     FinalizationStatus = "failed"
)

// Finalization tracks the exactly-once fulfillment lock on a transaction.
type Finalization struct {
	Status      FinalizationStatus  `bson:"status,omitempty" json:"status,omitempty"`
	StartedAt   *time.Time          `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time          `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Result      *FinalizationResult `bson:"result,omitempty" json:"result,omitempty"`
	Error       string              `bson:"error,omitempty" json:"error,omitempty"`
}

// FinalizationResult is the cached outcome returned to every caller once
// fulfillment succeeded.
type FinalizationResult struct {
	Type           TransactionType `bson:"type" json:"type"`
	BookingIDs     []string        `bson:"booking_ids,omitempty" json:"booking_ids,omitempty"`
	BookingCodes   []string        `bson:"booking_codes,omitempty" json:"booking_codes,omitempty"`
	SubscriptionID string          `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"`
}

type Transaction struct {
	ID                      string            `bson:"_id" json:"id"`
	SessionID               string            `bson:"session_id" json:"session_id"`
	UserID                  string            `bson:"user_id" json:"user_id"`
	Amount                  float64           `bson:"amount" json:"amount"`
	Currency                string            `bson:"currency" json:"currency"`
	Type                    TransactionType   `bson:"type" json:"type"`
	Status                  TransactionStatus `bson:"status" json:"status"`
	PaymentID               string            `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Metadata                CheckoutMetadata  `bson:"metadata" json:"metadata"`
	Finalization            Finalization      `bson:"finalization,omitempty" json:"finalization"`
	ProcessedProviderTxnIDs []string          `bson:"processed_provider_txn_ids,omitempty" json:"-"`
	CreatedAt               time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt               time.Time         `bson:"updated_at" json:"updated_at"`
}

// HourlyMetadata carries the fields a paid hourly checkout needs at
// fulfillment time.
type HourlyMetadata struct {
	SlotID        string   `bson:"slot_id" json:"slot_id"`
	SlotStartTime string   `bson:"slot_start_time,omitempty" json:"slot_start_time,omitempty"`
	DurationHours int      `bson:"duration_hours" json:"duration_hours"`
	ChildIDs      []string `bson:"child_ids" json:"child_ids"`
	CustomNotes   string   `bson:"custom_notes,omitempty" json:"custom_notes,omitempty"`
}

type BirthdayMetadata struct {
	SlotID     string `bson:"slot_id" json:"slot_id"`
	ThemeID    string `bson:"theme_id" json:"theme_id"`
	ChildID    string `bson:"child_id" json:"child_id"`
	GuestCount int    `bson:"guest_count,omitempty" json:"guest_count,omitempty"`
}

type SubscriptionMetadata struct {
	PlanID  string `bson:"plan_id" json:"plan_id"`
	ChildID string `bson:"child_id" json:"child_id"`
}

// CheckoutMetadata is a tagged variant: exactly one case is set and it must
// match the transaction type.
type CheckoutMetadata struct {
	Hourly       *HourlyMetadata       `bson:"hourly,omitempty" json:"hourly,omitempty"`
	Birthday     *BirthdayMetadata     `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Subscription *SubscriptionMetadata `bson:"subscription,omitempty" json:"subscription,omitempty"`

	CouponCode     string  `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountAmount float64 `bson:"discount_amount,omitempty" json:"discount_amount,omitempty"`
	FrontendOrigin string  `bson:"frontend_origin,omitempty" json:"frontend_origin,omitempty"`
}

func (m CheckoutMetadata) Validate(t TransactionType) error {
	set := 0
	if m.Hourly != nil {
		set++
	}
	if m.Birthday != nil {
		set++
	}
	if m.Subscription != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: metadata must carry exactly one case, got %d", ErrValidation, set)
	}

	switch t {
	case TypeHourly:
		if m.Hourly == nil {
			return fmt.Errorf("%w: hourly metadata is required", ErrValidation)
		}
		if m.Hourly.SlotID == "" {
			return fmt.Errorf("%w: slot_id is required", ErrValidation)
		}
		if len(m.Hourly.ChildIDs) == 0 {
			return fmt.Errorf("%w: at least one child is required", ErrValidation)
		}
		if m.Hourly.DurationHours < 1 {
			return fmt.Errorf("%w: duration_hours must be positive", ErrValidation)
		}
	case TypeBirthday:
		if m.Birthday == nil {
			return fmt.Errorf("%w: birthday metadata is required", ErrValidation)
		}
		if m.Birthday.SlotID == "" || m.Birthday.ThemeID == "" || m.Birthday.ChildID == "" {
			return fmt.Errorf("%w: slot_id, theme_id and child_id are required", ErrValidation)
		}
	case TypeSubscription:
		if m.Subscription == nil {
			return fmt.Errorf("%w: subscription metadata is required", ErrValidation)
		}
		if m.Subscription.PlanID == "" || m.Subscription.ChildID == "" {
			return fmt.Errorf("%w: plan_id and child_id are required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t)
	}
	return nil
}
