package capitalbank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

func TestMapDecision(t *testing.T) {
	tests := []struct {
		decision   string
		reasonCode string
		expected   models.Outcome
	}{
		{"ACCEPT", "100", models.OutcomePaid},
		{"accept", "100", models.OutcomePaid},
		{"ACCEPT", "480", models.OutcomePending},
		{"REVIEW", "480", models.OutcomePending},
		{"PENDING", "", models.OutcomePending},
		{"DECLINE", "102", models.OutcomeFailed},
		{"ERROR", "150", models.OutcomeFailed},
		{"CANCEL", "", models.OutcomeFailed},
		{"", "", models.OutcomeFailed},
	}

	for _, ts := range tests {
		require.Equal(t, ts.expected, MapDecision(ts.decision, ts.reasonCode),
			"decision=%q reason=%q", ts.decision, ts.reasonCode)
	}
}

func TestParseCallback(t *testing.T) {
	cb, err := ParseCallback(map[string]string{
		"req_reference_number": "cb_1_aa",
		"req_transaction_uuid": "prov-1",
		"decision":             "accept",
		"reason_code":          "100",
	})
	require.NoError(t, err)
	require.Equal(t, "cb_1_aa", cb.SessionID)
	require.Equal(t, "prov-1", cb.ProviderTxnID)
	require.Equal(t, "ACCEPT", cb.Decision)
	require.Equal(t, models.OutcomePaid, cb.Outcome)
}

func TestParseCallbackAliases(t *testing.T) {
	cb, err := ParseCallback(map[string]string{
		"reference_number": "cb_2_bb",
		"transaction_id":   "prov-2",
		"decision":         "REVIEW",
	})
	require.NoError(t, err)
	require.Equal(t, "cb_2_bb", cb.SessionID)
	require.Equal(t, "prov-2", cb.ProviderTxnID)
	require.Equal(t, models.OutcomePending, cb.Outcome)
}

func TestParseCallbackDefaults(t *testing.T) {
	// missing dedup key falls back to a deterministic session-scoped one,
	// missing reason code defaults to a generic decline
	cb, err := ParseCallback(map[string]string{
		"session_id": "cb_3_cc",
		"decision":   "DECLINE",
	})
	require.NoError(t, err)
	require.Equal(t, "cb_3_cc:DECLINE", cb.ProviderTxnID)
	require.Equal(t, "102", cb.ReasonCode)
	require.Equal(t, models.OutcomeFailed, cb.Outcome)
}

func TestParseCallbackRequiresReference(t *testing.T) {
	_, err := ParseCallback(map[string]string{"decision": "ACCEPT"})
	require.ErrorIs(t, err, models.ErrValidation)
}
