package models

import "time"

type SlotType string

const (
	SlotHourly   SlotType = "hourly"
	SlotBirthday SlotType = "birthday"
)

// Slot is a bookable unit of capacity, unique per (date, start_time, type).
// Invariant: 0 <= BookedCount <= Capacity, also under concurrent reservation.
type Slot struct {
	ID          string    `bson:"_id" json:"id"`
	Date        string    `bson:"date" json:"date"`             // YYYY-MM-DD
	StartTime   string    `bson:"start_time" json:"start_time"` // HH:mm, 24h
	SlotType    SlotType  `bson:"slot_type" json:"slot_type"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	BookedCount int       `bson:"booked_count" json:"booked_count"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCheckedIn BookingStatus = "checked_in"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type HourlyBooking struct {
	ID             string        `bson:"_id" json:"id"`
	UserID         string        `bson:"user_id" json:"user_id"`
	ChildID        string        `bson:"child_id" json:"child_id"`
	SlotID         string        `bson:"slot_id" json:"slot_id"`
	DurationHours  int           `bson:"duration_hours" json:"duration_hours"`
	CustomNotes    string        `bson:"custom_notes,omitempty" json:"custom_notes,omitempty"`
	BookingCode    string        `bson:"booking_code" json:"booking_code"`
	CheckinToken   string        `bson:"checkin_token" json:"checkin_token"`
	Status         BookingStatus `bson:"status" json:"status"`
	CheckInTime    *time.Time    `bson:"check_in_time,omitempty" json:"check_in_time,omitempty"`
	SessionEndTime *time.Time    `bson:"session_end_time,omitempty" json:"session_end_time,omitempty"`
	PaymentID      string        `bson:"payment_id" json:"payment_id"`
	Amount         float64       `bson:"amount" json:"amount"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}

type BirthdayBooking struct {
	ID          string        `bson:"_id" json:"id"`
	UserID      string        `bson:"user_id" json:"user_id"`
	ChildID     string        `bson:"child_id" json:"child_id"`
	SlotID      string        `bson:"slot_id" json:"slot_id"`
	ThemeID     string        `bson:"theme_id" json:"theme_id"`
	GuestCount  int           `bson:"guest_count" json:"guest_count"`
	BookingCode string        `bson:"booking_code" json:"booking_code"`
	Status      BookingStatus `bson:"status" json:"status"`
	PaymentID   string        `bson:"payment_id" json:"payment_id"`
	Amount      float64       `bson:"amount" json:"amount"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionConsumed SubscriptionStatus = "consumed"
)

// Subscription activates lazily: ExpiresAt stays nil until the first visit
// is consumed.
type Subscription struct {
	ID              string             `bson:"_id" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	ChildID         string             `bson:"child_id" json:"child_id"`
	PlanID          string             `bson:"plan_id" json:"plan_id"`
	RemainingVisits int                `bson:"remaining_visits" json:"remaining_visits"`
	ExpiresAt       *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	FirstCheckinAt  *time.Time         `bson:"first_checkin_at,omitempty" json:"first_checkin_at,omitempty"`
	Status          SubscriptionStatus `bson:"status" json:"status"`
	PaymentID       string             `bson:"payment_id" json:"payment_id"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

type SubscriptionPlan struct {
	ID       string  `bson:"_id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Visits   int     `bson:"visits" json:"visits"`
	Price    float64 `bson:"price" json:"price"`
	IsActive bool    `bson:"is_active" json:"is_active"`
}

type Theme struct {
	ID       string  `bson:"_id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	IsActive bool    `bson:"is_active" json:"is_active"`
}

type Coupon struct {
	ID         string     `bson:"_id" json:"id"`
	Code       string     `bson:"code" json:"code"`
	Percent    float64    `bson:"percent,omitempty" json:"percent,omitempty"`
	FlatAmount float64    `bson:"flat_amount,omitempty" json:"flat_amount,omitempty"`
	MinAmount  float64    `bson:"min_amount,omitempty" json:"min_amount,omitempty"`
	AppliesTo  string     `bson:"applies_to,omitempty" json:"applies_to,omitempty"` // empty = any type
	MaxUses    int        `bson:"max_uses,omitempty" json:"max_uses,omitempty"`
	UsedCount  int        `bson:"used_count" json:"used_count"`
	ExpiresAt  *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	IsActive   bool       `bson:"is_active" json:"is_active"`
}
