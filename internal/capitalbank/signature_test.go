package capitalbank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

const testSecret = "super-secret-key"

func signedPayload(t *testing.T, v *Verifier, extra map[string]string) map[string]string {
	t.Helper()
	fields := map[string]string{
		"decision":             "ACCEPT",
		"reason_code":          "100",
		"req_reference_number": "cb_1700000000000_abcdef12",
		"req_transaction_uuid": "prov-123",
		"signed_date_time":     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	for k, val := range extra {
		fields[k] = val
	}
	signed, err := v.Sign(fields)
	require.NoError(t, err)
	return signed
}

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)
	require.NoError(t, v.Verify(signedPayload(t, v, nil)))
}

func TestVerifyTamperedField(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)
	fields := signedPayload(t, v, nil)
	fields["decision"] = "REJECT"
	require.ErrorIs(t, v.Verify(fields), models.ErrInvalidSignature)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewVerifier(testSecret, 15*time.Minute)
	v := NewVerifier("other-secret", 15*time.Minute)
	require.ErrorIs(t, v.Verify(signedPayload(t, signer, nil)), models.ErrInvalidSignature)
}

func TestVerifyMissingSignature(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)
	fields := signedPayload(t, v, nil)
	delete(fields, "signature")
	require.ErrorIs(t, v.Verify(fields), models.ErrInvalidSignature)
}

func TestVerifyStaleTimestamp(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)
	fields := signedPayload(t, v, map[string]string{
		"signed_date_time": time.Now().UTC().Add(-time.Hour).Format("2006-01-02T15:04:05Z"),
	})
	require.ErrorIs(t, v.Verify(fields), models.ErrInvalidSignature)
}

func TestVerifyBadTimestamp(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)
	fields := signedPayload(t, v, map[string]string{"signed_date_time": "yesterday"})
	require.ErrorIs(t, v.Verify(fields), models.ErrInvalidSignature)
}

// Every rejection collapses into the same sentinel so responses cannot leak
// which check failed.
func TestVerifyFailuresShareOneSentinel(t *testing.T) {
	v := NewVerifier(testSecret, 15*time.Minute)

	tampered := signedPayload(t, v, nil)
	tampered["reason_code"] = "999"
	stale := signedPayload(t, v, map[string]string{
		"signed_date_time": time.Now().UTC().Add(-time.Hour).Format("2006-01-02T15:04:05Z"),
	})
	unsigned := signedPayload(t, v, nil)
	delete(unsigned, "signature")

	for _, fields := range []map[string]string{tampered, stale, unsigned} {
		require.ErrorIs(t, v.Verify(fields), models.ErrInvalidSignature)
	}
}

func TestSignExcludesCardFields(t *testing.T) {
	v := NewVerifier(testSecret, 0)
	signed, err := v.Sign(map[string]string{
		"decision":    "ACCEPT",
		"card_number": "4111111111111111",
		"card_cvn":    "123",
	})
	require.NoError(t, err)
	require.NotContains(t, signed["signed_field_names"], "card_number")
	require.NotContains(t, signed["signed_field_names"], "card_cvn")
	require.NoError(t, v.Verify(signed))

	// card data never binds the signature
	signed["card_number"] = "5555555555554444"
	require.NoError(t, v.Verify(signed))
}

func TestVerifyHonorsDeclaredFieldOrder(t *testing.T) {
	v := NewVerifier(testSecret, 0)
	signed, err := v.Sign(map[string]string{
		"signed_field_names": "decision,reason_code",
		"decision":           "ACCEPT",
		"reason_code":        "100",
		"unrelated":          "x",
	})
	require.NoError(t, err)
	require.Equal(t, "decision,reason_code", signed["signed_field_names"])
	require.NoError(t, v.Verify(signed))

	// unsigned fields stay free to change
	signed["unrelated"] = "y"
	require.NoError(t, v.Verify(signed))
}

func TestVerifyZeroWindowSkipsTimestampCheck(t *testing.T) {
	v := NewVerifier(testSecret, 0)
	fields := signedPayload(t, v, map[string]string{"signed_date_time": "not-a-time"})
	require.NoError(t, v.Verify(fields))
}
