package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/interfaces"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

// CheckoutService creates pending transactions with server-side pricing.
// Client-supplied amounts are never trusted.
type CheckoutService struct {
	txns    interfaces.TransactionStore
	slots   interfaces.SlotStore
	pricing interfaces.PricingStore
	logger  *zap.Logger
}

func NewCheckoutService(txns interfaces.TransactionStore, slots interfaces.SlotStore, pricing interfaces.PricingStore, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{txns, slots, pricing, logger}
}

type CheckoutRequest struct {
	UserID     string
	Type       models.TransactionType
	Metadata   models.CheckoutMetadata
	CouponCode string
}

// CreateCheckout computes the amount from slot/theme/plan pricing plus an
// optional coupon discount and stores the pending transaction.
func (c *CheckoutService) CreateCheckout(ctx context.Context, req CheckoutRequest) (*models.Transaction, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", models.ErrValidation)
	}
	if err := req.Metadata.Validate(req.Type); err != nil {
		return nil, err
	}

	amount, err := c.computeAmount(ctx, req.Type, &req.Metadata)
	if err != nil {
		return nil, err
	}

	if code := strings.ToUpper(strings.TrimSpace(req.CouponCode)); code != "" {
		amount, err = c.applyCoupon(ctx, code, req.Type, amount, &req.Metadata)
		if err != nil {
			return nil, err
		}
	}

	if amount <= 0 {
		return nil, fmt.Errorf("%w: invalid price configuration", models.ErrValidation)
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:        uuid.NewString(),
		SessionID: newSessionID(now),
		UserID:    req.UserID,
		Amount:    amount,
		Currency:  "jod",
		Type:      req.Type,
		Status:    models.StatusPending,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.txns.Create(ctx, tx); err != nil {
		return nil, err
	}

	c.logger.Info("checkout session created",
		zap.String("session", tx.SessionID),
		zap.String("type", string(tx.Type)),
		zap.Float64("amount", tx.Amount),
	)
	return tx, nil
}

func (c *CheckoutService) computeAmount(ctx context.Context, t models.TransactionType, meta *models.CheckoutMetadata) (float64, error) {
	switch t {
	case models.TypeHourly:
		slot, err := c.slots.Find(ctx, meta.Hourly.SlotID)
		if err != nil {
			return 0, err
		}
		if slot.SlotType != models.SlotHourly {
			return 0, fmt.Errorf("%w: slot is not an hourly slot", models.ErrValidation)
		}
		// advisory pre-check; the binding check happens at finalization
		if slot.Capacity-slot.BookedCount < len(meta.Hourly.ChildIDs) {
			return 0, models.ErrSlotUnavailable
		}
		meta.Hourly.SlotStartTime = slot.StartTime

		rates, err := c.pricing.HourlyRates(ctx)
		if err != nil {
			return 0, err
		}
		perChild := HourlyPrice(rates, meta.Hourly.DurationHours, slot.StartTime)
		return perChild * float64(len(meta.Hourly.ChildIDs)), nil

	case models.TypeBirthday:
		return c.pricing.ThemePrice(ctx, meta.Birthday.ThemeID)

	case models.TypeSubscription:
		plan, err := c.pricing.PlanByID(ctx, meta.Subscription.PlanID)
		if err != nil {
			return 0, err
		}
		return plan.Price, nil

	default:
		return 0, fmt.Errorf("%w: invalid payment type", models.ErrValidation)
	}
}

func (c *CheckoutService) applyCoupon(ctx context.Context, code string, t models.TransactionType, amount float64, meta *models.CheckoutMetadata) (float64, error) {
	coupon, err := c.pricing.CouponByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid coupon", models.ErrValidation)
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return 0, fmt.Errorf("%w: coupon expired", models.ErrValidation)
	}
	if coupon.AppliesTo != "" && coupon.AppliesTo != string(t) {
		return 0, fmt.Errorf("%w: coupon not applicable", models.ErrValidation)
	}
	if coupon.MinAmount > 0 && amount < coupon.MinAmount {
		return 0, fmt.Errorf("%w: order below coupon minimum", models.ErrValidation)
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return 0, fmt.Errorf("%w: coupon exhausted", models.ErrValidation)
	}

	discount := coupon.FlatAmount
	if coupon.Percent > 0 {
		discount = amount * coupon.Percent / 100
	}
	if discount > amount {
		discount = amount
	}

	meta.CouponCode = coupon.Code
	meta.DiscountAmount = discount
	return amount - discount, nil
}

func newSessionID(now time.Time) string {
	return fmt.Sprintf("cb_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
