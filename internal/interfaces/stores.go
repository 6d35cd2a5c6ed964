package interfaces

import (
	"context"
	"time"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

//go:generate mockgen -destination=./../services/mock_stores_test.go -package=services . TransactionStore,PricingStore,EventPublisher

// TransactionStore owns the purchase lifecycle. Every mutation is a single
// conditional update; the boolean result reports whether the caller won.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindBySession(ctx context.Context, sessionID string) (*models.Transaction, error)
	FindBySessionForUser(ctx context.Context, sessionID, userID string) (*models.Transaction, error)

	// ApplyDecision records one processor delivery. The filter drops
	// duplicate provider transaction ids and refuses to downgrade a paid
	// transaction; applied == false means the delivery was a no-op.
	ApplyDecision(ctx context.Context, sessionID, providerTxnID string, outcome models.Outcome, paymentID string) (applied bool, err error)

	// AcquireFinalization transitions finalization.status from
	// none/failed/stale-processing to processing. Exactly one concurrent
	// caller observes acquired == true.
	AcquireFinalization(ctx context.Context, sessionID string, staleBefore, now time.Time) (acquired bool, err error)
	CompleteFinalization(ctx context.Context, sessionID string, result models.FinalizationResult, completedAt time.Time) error
	FailFinalization(ctx context.Context, sessionID, cause string, completedAt time.Time) error
}

// SlotStore is the capacity-checked reservation primitive.
type SlotStore interface {
	// Reserve checks booked_count + count <= capacity and the slot type in
	// the same indivisible update. A miss returns models.ErrSlotUnavailable
	// without telling full, wrong type and absent apart.
	Reserve(ctx context.Context, slotID string, count int, slotType models.SlotType) error
	// Release is compensation only, used after a downstream failure.
	Release(ctx context.Context, slotID string, count int) error
	Find(ctx context.Context, slotID string) (*models.Slot, error)
}

type BookingStore interface {
	CreateHourly(ctx context.Context, b *models.HourlyBooking) error
	CreateBirthday(ctx context.Context, b *models.BirthdayBooking) error
	CreateSubscription(ctx context.Context, s *models.Subscription) error

	// Duplicate-detection safety lookups by payment id, independent of the
	// finalization lock. Empty results mean no prior artifacts.
	HourlyByPayment(ctx context.Context, paymentID string) ([]models.HourlyBooking, error)
	BirthdayByPayment(ctx context.Context, paymentID string) (*models.BirthdayBooking, error)
	SubscriptionByPayment(ctx context.Context, paymentID string) (*models.Subscription, error)

	CountConfirmedOrders(ctx context.Context, userID string) (int64, error)

	CheckInHourly(ctx context.Context, checkinToken string, now time.Time) (*models.HourlyBooking, error)
	ConsumeVisit(ctx context.Context, subscriptionID, userID string, now time.Time) (*models.Subscription, error)
}

type LoyaltyStore interface {
	// Award inserts the ledger entry and rewrites the materialized balance
	// in one transactional unit. A duplicate (refType, refId) returns
	// models.ErrAlreadyAwarded.
	Award(ctx context.Context, entry models.LedgerEntry) error
	GetBalance(ctx context.Context, userID string) (models.Balance, error)
}

type ReferralStore interface {
	CreateRedemption(ctx context.Context, r *models.ReferralRedemption) error
	// AwardPendingRedemption flips pending to awarded; only one caller wins.
	// Returns models.ErrNotFound when nothing was pending.
	AwardPendingRedemption(ctx context.Context, referredUserID string) (*models.ReferralRedemption, error)
	CodeForUser(ctx context.Context, userID string) (*models.ReferralCode, error)
	FindCode(ctx context.Context, code string) (*models.ReferralCode, error)
	InsertCode(ctx context.Context, code *models.ReferralCode) error
}

// PricingStore reads the master data pricing inputs (settings, themes,
// plans, coupons). All of it is maintained elsewhere; the engine only reads.
type PricingStore interface {
	HourlyRates(ctx context.Context) (models.HourlyRates, error)
	ThemePrice(ctx context.Context, themeID string) (float64, error)
	PlanByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error)
	CouponByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
