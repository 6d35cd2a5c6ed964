package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/storetest"
)

func TestPointsForType(t *testing.T) {
	require.Equal(t, 10, pointsForType(models.TypeHourly))
	require.Equal(t, 20, pointsForType(models.TypeBirthday))
	require.Equal(t, 15, pointsForType(models.TypeSubscription))
	require.Equal(t, 0, pointsForType(models.TransactionType("unknown")))
}

func TestAwardPointsDuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger := storetest.NewLedger()

	require.NoError(t, awardPoints(ctx, ledger, "user-1", 10, "first visit", "hourly", "tx-1"))
	require.NoError(t, awardPoints(ctx, ledger, "user-1", 10, "first visit", "hourly", "tx-1"))

	require.Len(t, ledger.ByRef("hourly", "tx-1"), 1)
	balance, err := ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 10, balance.PointsAvailable)
}

func TestAwardPointsSkipsEmptyInput(t *testing.T) {
	ctx := context.Background()
	ledger := storetest.NewLedger()

	require.NoError(t, awardPoints(ctx, ledger, "", 10, "r", "hourly", "tx-1"))
	require.NoError(t, awardPoints(ctx, ledger, "user-1", 0, "r", "hourly", "tx-1"))
	require.NoError(t, awardPoints(ctx, ledger, "user-1", 10, "r", "hourly", ""))
	require.Empty(t, ledger.Entries())
}

func TestAwardPointsStampsExpiry(t *testing.T) {
	ctx := context.Background()
	ledger := storetest.NewLedger()

	require.NoError(t, awardPoints(ctx, ledger, "user-1", 10, "r", "hourly", "tx-1"))
	entry := ledger.ByRef("hourly", "tx-1")[0]
	require.NotNil(t, entry.ExpiresAt)
	require.WithinDuration(t, time.Now().AddDate(0, 12, 0), *entry.ExpiresAt, time.Minute)
}

func TestBalanceIgnoresExpiredCredits(t *testing.T) {
	ctx := context.Background()
	ledger := storetest.NewLedger()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	require.NoError(t, ledger.Award(ctx, models.LedgerEntry{
		ID: "e1", UserID: "user-1", PointsDelta: 30, RefType: "hourly", RefID: "a", ExpiresAt: &past,
	}))
	require.NoError(t, ledger.Award(ctx, models.LedgerEntry{
		ID: "e2", UserID: "user-1", PointsDelta: 20, RefType: "hourly", RefID: "b", ExpiresAt: &future,
	}))
	// debits always count, even past their credit's horizon
	require.NoError(t, ledger.Award(ctx, models.LedgerEntry{
		ID: "e3", UserID: "user-1", PointsDelta: -5, RefType: "spend", RefID: "c",
	}))

	balance, err := ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 15, balance.PointsAvailable)
}

func TestBalanceNeverNegative(t *testing.T) {
	ctx := context.Background()
	ledger := storetest.NewLedger()
	past := time.Now().Add(-time.Hour)

	require.NoError(t, ledger.Award(ctx, models.LedgerEntry{
		ID: "e1", UserID: "user-1", PointsDelta: 30, RefType: "hourly", RefID: "a", ExpiresAt: &past,
	}))
	require.NoError(t, ledger.Award(ctx, models.LedgerEntry{
		ID: "e2", UserID: "user-1", PointsDelta: -10, RefType: "spend", RefID: "b",
	}))

	balance, err := ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 0, balance.PointsAvailable)
}
