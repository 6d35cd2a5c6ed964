// Package storetest provides mutex-guarded in-memory stores honoring the
// same conditional-update contracts as the Mongo implementations. They let
// the race-sensitive properties run in tests with real goroutines and -race.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

type TxnStore struct {
	mu   sync.Mutex
	txns map[string]*models.Transaction
}

func NewTxnStore() *TxnStore {
	return &TxnStore{txns: make(map[string]*models.Transaction)}
}

func (s *TxnStore) Create(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txns[tx.SessionID]; ok {
		return fmt.Errorf("%w: duplicate session", models.ErrValidation)
	}
	cp := *tx
	s.txns[tx.SessionID] = &cp
	return nil
}

func (s *TxnStore) FindBySession(ctx context.Context, sessionID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[sessionID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (s *TxnStore) FindBySessionForUser(ctx context.Context, sessionID, userID string) (*models.Transaction, error) {
	tx, err := s.FindBySession(ctx, sessionID)
	if err != nil || tx.UserID != userID {
		return nil, models.ErrNotFound
	}
	return tx, nil
}

func (s *TxnStore) ApplyDecision(ctx context.Context, sessionID, providerTxnID string, outcome models.Outcome, paymentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[sessionID]
	if !ok {
		return false, nil
	}
	for _, id := range tx.ProcessedProviderTxnIDs {
		if id == providerTxnID {
			return false, nil
		}
	}
	if outcome != models.OutcomePaid && tx.Status == models.StatusPaid {
		return false, nil
	}
	tx.ProcessedProviderTxnIDs = append(tx.ProcessedProviderTxnIDs, providerTxnID)
	switch outcome {
	case models.OutcomePaid:
		tx.Status = models.StatusPaid
		tx.PaymentID = paymentID
	case models.OutcomeFailed:
		tx.Status = models.StatusFailed
	}
	return true, nil
}

func (s *TxnStore) AcquireFinalization(ctx context.Context, sessionID string, staleBefore, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[sessionID]
	if !ok || tx.Status != models.StatusPaid {
		return false, nil
	}
	f := tx.Finalization
	acquirable := f.Status == models.FinalizationNone ||
		f.Status == models.FinalizationFailed ||
		(f.Status == models.FinalizationProcessing && f.StartedAt != nil && f.StartedAt.Before(staleBefore))
	if !acquirable {
		return false, nil
	}
	started := now
	tx.Finalization = models.Finalization{Status: models.FinalizationProcessing, StartedAt: &started}
	return true, nil
}

func (s *TxnStore) CompleteFinalization(ctx context.Context, sessionID string, result models.FinalizationResult, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[sessionID]
	if !ok {
		return models.ErrNotFound
	}
	tx.Finalization.Status = models.FinalizationSucceeded
	tx.Finalization.Result = &result
	tx.Finalization.CompletedAt = &completedAt
	tx.Finalization.Error = ""
	return nil
}

func (s *TxnStore) FailFinalization(ctx context.Context, sessionID, cause string, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txns[sessionID]
	if !ok {
		return models.ErrNotFound
	}
	tx.Finalization.Status = models.FinalizationFailed
	tx.Finalization.Error = cause
	tx.Finalization.CompletedAt = &completedAt
	return nil
}

type SlotStore struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func NewSlotStore(slots ...*models.Slot) *SlotStore {
	s := &SlotStore{slots: make(map[string]*models.Slot)}
	for _, slot := range slots {
		cp := *slot
		s.slots[slot.ID] = &cp
	}
	return s
}

func (s *SlotStore) Reserve(ctx context.Context, slotID string, count int, slotType models.SlotType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok || !slot.IsActive || slot.SlotType != slotType || slot.BookedCount+count > slot.Capacity {
		return models.ErrSlotUnavailable
	}
	slot.BookedCount += count
	return nil
}

func (s *SlotStore) Release(ctx context.Context, slotID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return models.ErrNotFound
	}
	slot.BookedCount -= count
	return nil
}

func (s *SlotStore) Find(ctx context.Context, slotID string) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *slot
	return &cp, nil
}

type BookingStore struct {
	mu            sync.Mutex
	hourly        []models.HourlyBooking
	birthday      []models.BirthdayBooking
	subscriptions []models.Subscription

	// FailHourlyCreates makes the next N hourly inserts fail, for testing
	// compensation paths. Set before starting concurrent work.
	FailHourlyCreates int
}

func NewBookingStore() *BookingStore { return &BookingStore{} }

func (s *BookingStore) CreateHourly(ctx context.Context, b *models.HourlyBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailHourlyCreates > 0 {
		s.FailHourlyCreates--
		return fmt.Errorf("insert hourly booking: connection reset")
	}
	s.hourly = append(s.hourly, *b)
	return nil
}

func (s *BookingStore) CreateBirthday(ctx context.Context, b *models.BirthdayBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.birthday = append(s.birthday, *b)
	return nil
}

func (s *BookingStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = append(s.subscriptions, *sub)
	return nil
}

func (s *BookingStore) HourlyByPayment(ctx context.Context, paymentID string) ([]models.HourlyBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.HourlyBooking
	for _, b := range s.hourly {
		if b.PaymentID == paymentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingStore) BirthdayByPayment(ctx context.Context, paymentID string) (*models.BirthdayBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.birthday {
		if b.PaymentID == paymentID {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *BookingStore) SubscriptionByPayment(ctx context.Context, paymentID string) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscriptions {
		if sub.PaymentID == paymentID {
			cp := sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *BookingStore) CountConfirmedOrders(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.hourly {
		if b.UserID == userID && b.Status != models.BookingCancelled {
			n++
		}
	}
	for _, b := range s.birthday {
		if b.UserID == userID && b.Status != models.BookingCancelled {
			n++
		}
	}
	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *BookingStore) CheckInHourly(ctx context.Context, checkinToken string, now time.Time) (*models.HourlyBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.hourly {
		b := &s.hourly[i]
		if b.CheckinToken != checkinToken || b.Status != models.BookingConfirmed {
			continue
		}
		end := now.Add(time.Duration(b.DurationHours) * time.Hour)
		b.Status = models.BookingCheckedIn
		b.CheckInTime = &now
		b.SessionEndTime = &end
		cp := *b
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (s *BookingStore) ConsumeVisit(ctx context.Context, subscriptionID, userID string, now time.Time) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subscriptions {
		sub := &s.subscriptions[i]
		if sub.ID != subscriptionID || sub.UserID != userID {
			continue
		}
		usable := (sub.Status == models.SubscriptionPending || sub.Status == models.SubscriptionActive) &&
			sub.RemainingVisits > 0 &&
			(sub.ExpiresAt == nil || sub.ExpiresAt.After(now))
		if !usable {
			return nil, models.ErrNoVisitsLeft
		}
		if sub.FirstCheckinAt == nil {
			expires := now.Add(30 * 24 * time.Hour)
			sub.FirstCheckinAt = &now
			sub.ExpiresAt = &expires
			sub.Status = models.SubscriptionActive
		}
		sub.RemainingVisits--
		if sub.RemainingVisits == 0 {
			sub.Status = models.SubscriptionConsumed
		}
		cp := *sub
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

type Ledger struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
}

func NewLedger() *Ledger { return &Ledger{} }

func (s *Ledger) Award(ctx context.Context, entry models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.UserID == entry.UserID && e.RefType == entry.RefType && e.RefID == entry.RefID {
			return models.ErrAlreadyAwarded
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Ledger) GetBalance(ctx context.Context, userID string) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	total := 0
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if e.PointsDelta < 0 || e.ExpiresAt == nil || e.ExpiresAt.After(now) {
			total += e.PointsDelta
		}
	}
	if total < 0 {
		total = 0
	}
	return models.Balance{UserID: userID, PointsAvailable: total, UpdatedAt: now}, nil
}

func (s *Ledger) Entries() []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Ledger) ByRef(refType, refID string) []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for _, e := range s.entries {
		if e.RefType == refType && e.RefID == refID {
			out = append(out, e)
		}
	}
	return out
}

type ReferralStore struct {
	mu          sync.Mutex
	redemptions map[string]*models.ReferralRedemption // by referred user id
	codes       map[string]*models.ReferralCode       // by code
}

func NewReferralStore() *ReferralStore {
	return &ReferralStore{
		redemptions: make(map[string]*models.ReferralRedemption),
		codes:       make(map[string]*models.ReferralCode),
	}
}

func (s *ReferralStore) CreateRedemption(ctx context.Context, r *models.ReferralRedemption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.redemptions[r.ReferredUserID]; ok {
		return fmt.Errorf("%w: already redeemed", models.ErrValidation)
	}
	cp := *r
	s.redemptions[r.ReferredUserID] = &cp
	return nil
}

func (s *ReferralStore) AwardPendingRedemption(ctx context.Context, referredUserID string) (*models.ReferralRedemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.redemptions[referredUserID]
	if !ok || r.Status != models.RedemptionPending {
		return nil, models.ErrNotFound
	}
	r.Status = models.RedemptionAwarded
	cp := *r
	return &cp, nil
}

func (s *ReferralStore) CodeForUser(ctx context.Context, userID string) (*models.ReferralCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *ReferralStore) FindCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[code]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *ReferralStore) InsertCode(ctx context.Context, code *models.ReferralCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[code.Code]; ok {
		return fmt.Errorf("%w: duplicate code", models.ErrValidation)
	}
	cp := *code
	s.codes[code.Code] = &cp
	return nil
}

type PricingStore struct {
	Rates  models.HourlyRates
	Themes map[string]float64
	Plans  map[string]*models.SubscriptionPlan
}

func NewPricingStore() *PricingStore {
	return &PricingStore{
		Rates:  models.DefaultHourlyRates(),
		Themes: make(map[string]float64),
		Plans:  make(map[string]*models.SubscriptionPlan),
	}
}

func (s *PricingStore) HourlyRates(ctx context.Context) (models.HourlyRates, error) {
	return s.Rates, nil
}

func (s *PricingStore) ThemePrice(ctx context.Context, themeID string) (float64, error) {
	if p, ok := s.Themes[themeID]; ok {
		return p, nil
	}
	return 100, nil
}

func (s *PricingStore) PlanByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	p, ok := s.Plans[planID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *PricingStore) CouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return nil, models.ErrNotFound
}
