package capitalbank

import (
	"fmt"
	"strings"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

// Callback is one normalized processor delivery, shared by the notify and
// return paths.
type Callback struct {
	SessionID     string
	ProviderTxnID string
	Decision      string
	ReasonCode    string
	Outcome       models.Outcome
}

// ParseCallback extracts the session reference, the dedup key and the mapped
// outcome from a verified payload. Field aliases follow the processor's
// request/response naming split.
func ParseCallback(fields map[string]string) (Callback, error) {
	sessionID := firstOf(fields, "req_reference_number", "reference_number", "session_id")
	if sessionID == "" {
		return Callback{}, fmt.Errorf("%w: reference_number is required", models.ErrValidation)
	}

	decision := strings.ToUpper(strings.TrimSpace(fields["decision"]))
	reasonCode := firstOf(fields, "reason_code", "reasonCode")
	if reasonCode == "" {
		reasonCode = "102"
	}

	providerTxnID := firstOf(fields, "req_transaction_uuid", "transaction_id", "transaction_uuid")
	if providerTxnID == "" {
		providerTxnID = sessionID + ":" + decision
	}

	return Callback{
		SessionID:     sessionID,
		ProviderTxnID: providerTxnID,
		Decision:      decision,
		ReasonCode:    reasonCode,
		Outcome:       MapDecision(decision, reasonCode),
	}, nil
}

// MapDecision maps processor decisions onto the transaction lifecycle.
// ACCEPT with reason 100 is the only fully settled outcome; review states
// stay pending and everything else is a reject.
func MapDecision(decision, reasonCode string) models.Outcome {
	switch strings.ToUpper(decision) {
	case "ACCEPT":
		if reasonCode == "100" {
			return models.OutcomePaid
		}
		return models.OutcomePending
	case "REVIEW", "PENDING":
		return models.OutcomePending
	default:
		return models.OutcomeFailed
	}
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(fields[key]); v != "" {
			return v
		}
	}
	return ""
}
