package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/interfaces"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

// Points per confirmed order type.
const (
	pointsHourly       = 10
	pointsBirthday     = 20
	pointsSubscription = 15

	pointsReferrer = 20
	pointsReferred = 10

	ledgerExpiryMonths = 12
)

func pointsForType(t models.TransactionType) int {
	switch t {
	case models.TypeHourly:
		return pointsHourly
	case models.TypeBirthday:
		return pointsBirthday
	case models.TypeSubscription:
		return pointsSubscription
	default:
		return 0
	}
}

// awardPoints writes one ledger entry. A duplicate (refType, refId) means a
// previous attempt already credited this event and is not an error.
func awardPoints(ctx context.Context, ledger interfaces.LoyaltyStore, userID string, points int, reason, refType, refID string) error {
	if userID == "" || refID == "" || points <= 0 {
		return nil
	}

	now := time.Now()
	expires := now.AddDate(0, ledgerExpiryMonths, 0)
	err := ledger.Award(ctx, models.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		PointsDelta: points,
		Reason:      reason,
		RefType:     refType,
		RefID:       refID,
		ExpiresAt:   &expires,
		CreatedAt:   now,
	})
	if err != nil && !errors.Is(err, models.ErrAlreadyAwarded) {
		return fmt.Errorf("award %s:%s: %w", refType, refID, err)
	}
	return nil
}
