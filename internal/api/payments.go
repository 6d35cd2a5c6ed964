package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/capitalbank"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/services"
)

const gatewayPayURL = "https://secureacceptance.cybersource.com/pay"

type CreateCheckoutRequest struct {
	Type       models.TransactionType  `json:"type"`
	Metadata   models.CheckoutMetadata `json:"metadata"`
	CouponCode string                  `json:"coupon_code,omitempty"`
}

type CreateCheckoutResponse struct {
	SessionID string            `json:"session_id"`
	URL       string            `json:"url"`
	Fields    map[string]string `json:"fields"`
}

func (h *Handler) CreateCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, fmt.Errorf("%w: missing user", models.ErrValidation))
		return
	}

	var req CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", models.ErrValidation))
		return
	}
	defer r.Body.Close()

	tx, err := h.checkout.CreateCheckout(r.Context(), services.CheckoutRequest{
		UserID:     uid,
		Type:       req.Type,
		Metadata:   req.Metadata,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		h.Log("create checkout", "CreateCheckoutHandler", err)
		writeError(w, err)
		return
	}

	fields, err := h.gatewayFields(tx)
	if err != nil {
		h.Log("sign gateway form", "CreateCheckoutHandler", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateCheckoutResponse{
		SessionID: tx.SessionID,
		URL:       gatewayPayURL,
		Fields:    fields,
	})
}

// gatewayFields builds the signed hosted-checkout form for the transaction.
func (h *Handler) gatewayFields(tx *models.Transaction) (map[string]string, error) {
	return h.verifier.Sign(map[string]string{
		"access_key":       h.gateway.AccessKey,
		"profile_id":       h.gateway.MerchantID,
		"transaction_uuid": uuid.NewString(),
		"transaction_type": "sale",
		"reference_number": tx.SessionID,
		// JOD is a three-decimal currency.
		"amount":           fmt.Sprintf("%.3f", tx.Amount),
		"currency":         h.gateway.Currency,
		"locale":           h.gateway.Locale,
		"signed_date_time": time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// NotifyHandler is the server-to-server delivery path. It always answers
// 200 so the processor stops retrying; unauthenticated payloads are logged
// and dropped without touching state.
func (h *Handler) NotifyHandler(w http.ResponseWriter, r *http.Request) {
	received := map[string]bool{"received": true}

	fields, err := formFields(r)
	if err != nil {
		writeJSON(w, http.StatusOK, received)
		return
	}
	if err := h.verifier.Verify(fields); err != nil {
		h.logger.Warn("notify signature rejected", zap.Error(err))
		writeJSON(w, http.StatusOK, received)
		return
	}

	cb, err := capitalbank.ParseCallback(fields)
	if err != nil {
		h.logger.Warn("notify payload rejected", zap.Error(err))
		writeJSON(w, http.StatusOK, received)
		return
	}

	h.applyCallback(r, cb)
	writeJSON(w, http.StatusOK, received)
}

// ReturnHandler is the browser redirect path. The user always ends up on the
// frontend; the redirect target only reflects what is already recorded.
func (h *Handler) ReturnHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := formFields(r)
	if err != nil {
		h.redirect(w, r, "", "failed")
		return
	}
	if err := h.verifier.Verify(fields); err != nil {
		h.logger.Warn("return signature rejected", zap.Error(err))
		h.redirect(w, r, "", "failed")
		return
	}

	cb, err := capitalbank.ParseCallback(fields)
	if err != nil {
		h.logger.Warn("return payload rejected", zap.Error(err))
		h.redirect(w, r, "", "failed")
		return
	}

	h.applyCallback(r, cb)

	page := "failed"
	switch cb.Outcome {
	case models.OutcomePaid:
		page = "success"
	case models.OutcomePending:
		page = "pending"
	}
	h.redirect(w, r, cb.SessionID, page)
}

// applyCallback records the delivery and, on a paid outcome, finalizes
// inline. Finalization errors never change the callback response: the poll
// endpoint picks the result up later.
func (h *Handler) applyCallback(r *http.Request, cb capitalbank.Callback) {
	applied, err := h.txns.ApplyDecision(r.Context(), cb.SessionID, cb.ProviderTxnID, cb.Outcome, cb.ProviderTxnID)
	if err != nil {
		h.Log("apply decision", "applyCallback", err)
		return
	}
	h.logger.Info("processor decision",
		zap.String("session_id", cb.SessionID),
		zap.String("decision", cb.Decision),
		zap.String("outcome", string(cb.Outcome)),
		zap.Bool("applied", applied),
	)

	if cb.Outcome != models.OutcomePaid {
		return
	}
	if _, err := h.finalizer.Finalize(r.Context(), cb.SessionID); err != nil &&
		!errors.Is(err, models.ErrFinalizationInProgress) {
		h.Log("finalize after callback", "applyCallback", err)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, sessionID, page string) {
	origin := h.frontend
	if sessionID != "" {
		if tx, err := h.txns.FindBySession(r.Context(), sessionID); err == nil && tx.Metadata.FrontendOrigin != "" {
			origin = tx.Metadata.FrontendOrigin
		}
	}
	target := fmt.Sprintf("%s/payment/%s", origin, page)
	if sessionID != "" {
		target += "?session_id=" + sessionID
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type FinalizeResponse struct {
	Status string                     `json:"status"`
	Result *models.FinalizationResult `json:"result,omitempty"`
}

func (h *Handler) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.finalizer.Finalize(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrFinalizationInProgress) {
			writeJSON(w, http.StatusAccepted, FinalizeResponse{Status: "processing"})
			return
		}
		if !errors.Is(err, models.ErrNotPaid) && !errors.Is(err, models.ErrNotFound) {
			h.Log("finalize", "FinalizeHandler", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FinalizeResponse{Status: "succeeded", Result: result})
}

type StatusResponse struct {
	Status       models.TransactionStatus `json:"status"`
	PaymentID    string                   `json:"payment_id,omitempty"`
	Finalization models.Finalization      `json:"finalization"`
}

func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, fmt.Errorf("%w: missing user", models.ErrValidation))
		return
	}

	tx, err := h.txns.FindBySessionForUser(r.Context(), mux.Vars(r)["sessionId"], uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:       tx.Status,
		PaymentID:    tx.PaymentID,
		Finalization: tx.Finalization,
	})
}
