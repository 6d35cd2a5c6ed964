package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/interfaces"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

const codeAttempts = 5

// ReferralService awards the referral bonus on the referred user's first
// qualifying confirmed order, exactly once.
type ReferralService struct {
	bookings  interfaces.BookingStore
	referrals interfaces.ReferralStore
	loyalty   interfaces.LoyaltyStore
	logger    *zap.Logger
}

func NewReferralService(bookings interfaces.BookingStore, referrals interfaces.ReferralStore, loyalty interfaces.LoyaltyStore, logger *zap.Logger) *ReferralService {
	return &ReferralService{bookings, referrals, loyalty, logger}
}

// EvaluateFirstOrder runs after any booking confirms for the user. The
// redemption transition is the race guard; the deterministic credit
// references make the credit step idempotent on top of that.
func (r *ReferralService) EvaluateFirstOrder(ctx context.Context, userID string) error {
	count, err := r.bookings.CountConfirmedOrders(ctx, userID)
	if err != nil {
		return err
	}
	if count != 1 {
		return nil
	}

	redemption, err := r.referrals.AwardPendingRedemption(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	r.logger.Info("referral awarded",
		zap.String("redemption", redemption.ID),
		zap.String("referrer", redemption.ReferrerUserID),
		zap.String("referred", redemption.ReferredUserID),
	)

	err = awardPoints(ctx, r.loyalty, redemption.ReferrerUserID, pointsReferrer,
		fmt.Sprintf("Referral reward (+%d) for inviting a new customer", pointsReferrer),
		"referral_referrer", redemption.ID)
	if err != nil {
		return err
	}
	return awardPoints(ctx, r.loyalty, redemption.ReferredUserID, pointsReferred,
		fmt.Sprintf("Referral welcome reward (+%d)", pointsReferred),
		"referral_referred", redemption.ID)
}

// Redeem records a pending redemption for the calling user. Every failure
// mode maps to the same validation error so codes cannot be probed.
func (r *ReferralService) Redeem(ctx context.Context, referredUserID, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return fmt.Errorf("%w: code is required", models.ErrValidation)
	}

	referralCode, err := r.referrals.FindCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: unknown code", models.ErrValidation)
		}
		return err
	}
	if referralCode.UserID == referredUserID {
		return fmt.Errorf("%w: self referral", models.ErrValidation)
	}

	return r.referrals.CreateRedemption(ctx, &models.ReferralRedemption{
		ID:             uuid.NewString(),
		ReferrerUserID: referralCode.UserID,
		ReferredUserID: referredUserID,
		Status:         models.RedemptionPending,
		RedeemedAt:     time.Now(),
	})
}

// MyCode returns the user's referral code, generating one on first use.
// Collisions on the short code retry with a fresh value.
func (r *ReferralService) MyCode(ctx context.Context, userID string) (string, error) {
	existing, err := r.referrals.CodeForUser(ctx, userID)
	if err == nil {
		return existing.Code, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	for i := 0; i < codeAttempts; i++ {
		code := &models.ReferralCode{
			ID:     uuid.NewString(),
			UserID: userID,
			Code:   randomCode(),
		}
		err = r.referrals.InsertCode(ctx, code)
		if err == nil {
			return code.Code, nil
		}
		if !errors.Is(err, models.ErrValidation) {
			return "", err
		}
		// a concurrent request may have created ours meanwhile
		if existing, findErr := r.referrals.CodeForUser(ctx, userID); findErr == nil {
			return existing.Code, nil
		}
	}
	return "", fmt.Errorf("generate referral code: %w", err)
}

func randomCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
