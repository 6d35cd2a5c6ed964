package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

func (h *Handler) RedeemReferralHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, fmt.Errorf("%w: missing user", models.ErrValidation))
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", models.ErrValidation))
		return
	}
	defer r.Body.Close()

	if err := h.referrals.Redeem(r.Context(), uid, req.Code); err != nil {
		if errors.Is(err, models.ErrValidation) {
			// One body for every rejection so codes cannot be probed.
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid referral code"})
			return
		}
		h.Log("redeem referral", "RedeemReferralHandler", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pending"})
}

func (h *Handler) MyReferralCodeHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, fmt.Errorf("%w: missing user", models.ErrValidation))
		return
	}

	code, err := h.referrals.MyCode(r.Context(), uid)
	if err != nil {
		h.Log("referral code", "MyReferralCodeHandler", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

type ConsumeVisitResponse struct {
	SubscriptionID  string                    `json:"subscription_id"`
	RemainingVisits int                       `json:"remaining_visits"`
	Status          models.SubscriptionStatus `json:"status"`
	ExpiresAt       *time.Time                `json:"expires_at,omitempty"`
}

func (h *Handler) ConsumeVisitHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, fmt.Errorf("%w: missing user", models.ErrValidation))
		return
	}

	var req struct {
		SubscriptionID string `json:"subscription_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SubscriptionID == "" {
		writeError(w, fmt.Errorf("%w: subscription_id is required", models.ErrValidation))
		return
	}
	defer r.Body.Close()

	sub, err := h.bookings.ConsumeVisit(r.Context(), req.SubscriptionID, uid, time.Now())
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrNoVisitsLeft) {
			h.Log("consume visit", "ConsumeVisitHandler", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConsumeVisitResponse{
		SubscriptionID:  sub.ID,
		RemainingVisits: sub.RemainingVisits,
		Status:          sub.Status,
		ExpiresAt:       sub.ExpiresAt,
	})
}

type CheckInResponse struct {
	BookingCode    string               `json:"booking_code"`
	Status         models.BookingStatus `json:"status"`
	CheckInTime    *time.Time           `json:"check_in_time,omitempty"`
	SessionEndTime *time.Time           `json:"session_end_time,omitempty"`
}

func (h *Handler) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CheckinToken string `json:"checkin_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CheckinToken == "" {
		writeError(w, fmt.Errorf("%w: checkin_token is required", models.ErrValidation))
		return
	}
	defer r.Body.Close()

	booking, err := h.bookings.CheckInHourly(r.Context(), req.CheckinToken, time.Now())
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			h.Log("check in", "CheckInHandler", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CheckInResponse{
		BookingCode:    booking.BookingCode,
		Status:         booking.Status,
		CheckInTime:    booking.CheckInTime,
		SessionEndTime: booking.SessionEndTime,
	})
}
