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

// FinalizerService turns a paid transaction into its bookings exactly once,
// no matter how many delivery paths race to trigger it. The transaction
// document's finalization block is the lock; provider-level idempotency
// (bookings looked up by payment id) backstops crashed attempts.
type FinalizerService struct {
	txns      interfaces.TransactionStore
	slots     interfaces.SlotStore
	bookings  interfaces.BookingStore
	loyalty   interfaces.LoyaltyStore
	referrals *ReferralService
	pricing   interfaces.PricingStore
	publisher interfaces.EventPublisher
	logger    *zap.Logger

	staleAfter time.Duration
	now        func() time.Time
}

func NewFinalizerService(
	txns interfaces.TransactionStore,
	slots interfaces.SlotStore,
	bookings interfaces.BookingStore,
	loyalty interfaces.LoyaltyStore,
	referrals *ReferralService,
	pricing interfaces.PricingStore,
	publisher interfaces.EventPublisher,
	staleAfter time.Duration,
	logger *zap.Logger,
) *FinalizerService {
	return &FinalizerService{
		txns:       txns,
		slots:      slots,
		bookings:   bookings,
		loyalty:    loyalty,
		referrals:  referrals,
		pricing:    pricing,
		publisher:  publisher,
		logger:     logger,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Finalize fulfills the transaction identified by sessionID. Concurrent
// callers get exactly one fulfillment: the winner builds the bookings,
// losers observe ErrFinalizationInProgress or the cached result.
func (f *FinalizerService) Finalize(ctx context.Context, sessionID string) (*models.FinalizationResult, error) {
	tx, err := f.txns.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if tx.Finalization.Status == models.FinalizationSucceeded && tx.Finalization.Result != nil {
		return tx.Finalization.Result, nil
	}
	if tx.Status != models.StatusPaid {
		return nil, fmt.Errorf("%w: transaction status is %s", models.ErrNotPaid, tx.Status)
	}

	now := f.now()
	acquired, err := f.txns.AcquireFinalization(ctx, sessionID, now.Add(-f.staleAfter), now)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return f.observe(ctx, sessionID)
	}

	result, err := f.fulfill(ctx, tx)
	if err != nil {
		f.logger.Error("finalization failed",
			zap.String("session_id", sessionID),
			zap.String("type", string(tx.Type)),
			zap.Error(err),
		)
		if failErr := f.txns.FailFinalization(ctx, sessionID, err.Error(), f.now()); failErr != nil {
			f.logger.Error("record finalization failure", zap.String("session_id", sessionID), zap.Error(failErr))
		}
		return nil, fmt.Errorf("%w: %s", models.ErrFinalizationFailed, err)
	}

	if err := f.txns.CompleteFinalization(ctx, sessionID, *result, f.now()); err != nil {
		// Fulfillment side effects are already durable and idempotent;
		// a retry replays onto existing bookings.
		return nil, err
	}

	f.logger.Info("finalization complete",
		zap.String("session_id", sessionID),
		zap.String("type", string(tx.Type)),
		zap.Strings("booking_codes", result.BookingCodes),
	)
	f.publishConfirmed(ctx, tx, result)
	return result, nil
}

// observe reports the state a losing caller should see after the lock CAS
// misses. The winner may have finished between our read and the CAS.
func (f *FinalizerService) observe(ctx context.Context, sessionID string) (*models.FinalizationResult, error) {
	tx, err := f.txns.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch tx.Finalization.Status {
	case models.FinalizationSucceeded:
		if tx.Finalization.Result != nil {
			return tx.Finalization.Result, nil
		}
		return nil, models.ErrFinalizationInProgress
	case models.FinalizationFailed:
		return nil, fmt.Errorf("%w: %s", models.ErrFinalizationFailed, tx.Finalization.Error)
	default:
		return nil, models.ErrFinalizationInProgress
	}
}

func (f *FinalizerService) fulfill(ctx context.Context, tx *models.Transaction) (*models.FinalizationResult, error) {
	switch tx.Type {
	case models.TypeHourly:
		return f.fulfillHourly(ctx, tx)
	case models.TypeBirthday:
		return f.fulfillBirthday(ctx, tx)
	case models.TypeSubscription:
		return f.fulfillSubscription(ctx, tx)
	default:
		return nil, fmt.Errorf("unknown transaction type %q", tx.Type)
	}
}

// paymentRef keys the fulfillment artifacts back to the payment so a crashed
// attempt can be resumed without duplicating bookings.
func paymentRef(tx *models.Transaction) string {
	if tx.PaymentID != "" {
		return tx.PaymentID
	}
	return tx.ID
}

func (f *FinalizerService) fulfillHourly(ctx context.Context, tx *models.Transaction) (*models.FinalizationResult, error) {
	meta := tx.Metadata.Hourly
	if meta == nil {
		return nil, fmt.Errorf("transaction %s has no hourly metadata", tx.ID)
	}
	pid := paymentRef(tx)

	existing, err := f.bookings.HourlyByPayment(ctx, pid)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		result := &models.FinalizationResult{Type: models.TypeHourly}
		for _, b := range existing {
			result.BookingIDs = append(result.BookingIDs, b.ID)
			result.BookingCodes = append(result.BookingCodes, b.BookingCode)
		}
		return result, nil
	}

	count := len(meta.ChildIDs)
	if count == 0 {
		return nil, fmt.Errorf("transaction %s has no children", tx.ID)
	}
	if err := f.slots.Reserve(ctx, meta.SlotID, count, models.SlotHourly); err != nil {
		return nil, err
	}

	result := &models.FinalizationResult{Type: models.TypeHourly}
	perChild := tx.Amount / float64(count)
	now := f.now()
	for _, childID := range meta.ChildIDs {
		booking := &models.HourlyBooking{
			ID:            uuid.NewString(),
			UserID:        tx.UserID,
			ChildID:       childID,
			SlotID:        meta.SlotID,
			DurationHours: meta.DurationHours,
			CustomNotes:   meta.CustomNotes,
			BookingCode:   bookingCode("PK-H-"),
			CheckinToken:  uuid.NewString(),
			Status:        models.BookingConfirmed,
			PaymentID:     pid,
			Amount:        perChild,
			CreatedAt:     now,
		}
		if err := f.bookings.CreateHourly(ctx, booking); err != nil {
			f.rollbackSlot(ctx, meta.SlotID, count)
			return nil, err
		}
		result.BookingIDs = append(result.BookingIDs, booking.ID)
		result.BookingCodes = append(result.BookingCodes, booking.BookingCode)
	}

	f.awardAndRefer(ctx, tx)
	return result, nil
}

func (f *FinalizerService) fulfillBirthday(ctx context.Context, tx *models.Transaction) (*models.FinalizationResult, error) {
	meta := tx.Metadata.Birthday
	if meta == nil {
		return nil, fmt.Errorf("transaction %s has no birthday metadata", tx.ID)
	}
	pid := paymentRef(tx)

	existing, err := f.bookings.BirthdayByPayment(ctx, pid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &models.FinalizationResult{
			Type:         models.TypeBirthday,
			BookingIDs:   []string{existing.ID},
			BookingCodes: []string{existing.BookingCode},
		}, nil
	}

	if err := f.slots.Reserve(ctx, meta.SlotID, 1, models.SlotBirthday); err != nil {
		return nil, err
	}

	booking := &models.BirthdayBooking{
		ID:          uuid.NewString(),
		UserID:      tx.UserID,
		SlotID:      meta.SlotID,
		ThemeID:     meta.ThemeID,
		ChildID:     meta.ChildID,
		GuestCount:  meta.GuestCount,
		BookingCode: bookingCode("PK-B-"),
		Status:      models.BookingConfirmed,
		PaymentID:   pid,
		Amount:      tx.Amount,
		CreatedAt:   f.now(),
	}
	if err := f.bookings.CreateBirthday(ctx, booking); err != nil {
		f.rollbackSlot(ctx, meta.SlotID, 1)
		return nil, err
	}

	f.awardAndRefer(ctx, tx)
	return &models.FinalizationResult{
		Type:         models.TypeBirthday,
		BookingIDs:   []string{booking.ID},
		BookingCodes: []string{booking.BookingCode},
	}, nil
}

func (f *FinalizerService) fulfillSubscription(ctx context.Context, tx *models.Transaction) (*models.FinalizationResult, error) {
	meta := tx.Metadata.Subscription
	if meta == nil {
		return nil, fmt.Errorf("transaction %s has no subscription metadata", tx.ID)
	}
	pid := paymentRef(tx)

	existing, err := f.bookings.SubscriptionByPayment(ctx, pid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &models.FinalizationResult{
			Type:           models.TypeSubscription,
			SubscriptionID: existing.ID,
		}, nil
	}

	plan, err := f.pricing.PlanByID(ctx, meta.PlanID)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", meta.PlanID, err)
	}

	// ExpiresAt stays unset until the first visit is consumed.
	sub := &models.Subscription{
		ID:              uuid.NewString(),
		UserID:          tx.UserID,
		ChildID:         meta.ChildID,
		PlanID:          plan.ID,
		RemainingVisits: plan.Visits,
		Status:          models.SubscriptionPending,
		PaymentID:       pid,
		CreatedAt:       f.now(),
	}
	if err := f.bookings.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	f.awardAndRefer(ctx, tx)
	return &models.FinalizationResult{
		Type:           models.TypeSubscription,
		SubscriptionID: sub.ID,
	}, nil
}

// awardAndRefer credits loyalty points and evaluates the referral bonus.
// Both are idempotent and non-fatal: the bookings stand regardless.
func (f *FinalizerService) awardAndRefer(ctx context.Context, tx *models.Transaction) {
	points := pointsForType(tx.Type)
	err := awardPoints(ctx, f.loyalty, tx.UserID, points,
		fmt.Sprintf("Earned %d points for a %s booking", points, tx.Type),
		string(tx.Type), tx.ID)
	if err != nil {
		f.logger.Warn("loyalty award failed", zap.String("transaction", tx.ID), zap.Error(err))
	}

	if f.referrals != nil {
		if err := f.referrals.EvaluateFirstOrder(ctx, tx.UserID); err != nil {
			f.logger.Warn("referral evaluation failed", zap.String("user_id", tx.UserID), zap.Error(err))
		}
	}
}

func (f *FinalizerService) rollbackSlot(ctx context.Context, slotID string, count int) {
	if err := f.slots.Release(ctx, slotID, count); err != nil {
		f.logger.Error("release slot after failed booking",
			zap.String("slot_id", slotID),
			zap.Int("count", count),
			zap.Error(err),
		)
	}
}

func (f *FinalizerService) publishConfirmed(ctx context.Context, tx *models.Transaction, result *models.FinalizationResult) {
	if f.publisher == nil {
		return
	}
	event := map[string]any{
		"session_id":    tx.SessionID,
		"user_id":       tx.UserID,
		"type":          tx.Type,
		"booking_ids":   result.BookingIDs,
		"booking_codes": result.BookingCodes,
		"finalized_at":  f.now().UTC(),
	}
	if result.SubscriptionID != "" {
		event["subscription_id"] = result.SubscriptionID
	}
	if err := f.publisher.PublishJSON(ctx, "booking.confirmed", event); err != nil {
		f.logger.Warn("publish booking.confirmed", zap.String("session_id", tx.SessionID), zap.Error(err))
	}
}

func bookingCode(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
