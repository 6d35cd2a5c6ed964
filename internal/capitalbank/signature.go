package capitalbank

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

// Fields that must never participate in a signature.
var signatureExcludedFields = map[string]struct{}{
	"card_number": {},
	"card_cvn":    {},
	"signature":   {},
}

// Verifier authenticates Secure Acceptance style payloads: an HMAC-SHA256
// over an ordered, explicitly named subset of the fields, shared-secret keyed.
type Verifier struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

func NewVerifier(secret string, window time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), window: window, now: time.Now}
}

// SignedFieldNames returns the payload's declared signed field list, or every
// non-excluded field sorted when the payload does not declare one.
func SignedFieldNames(fields map[string]string) []string {
	declared := strings.Split(fields["signed_field_names"], ",")
	names := make([]string, 0, len(declared))
	for _, name := range declared {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}

	for key := range fields {
		if _, excluded := signatureExcludedFields[key]; !excluded {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

func buildDataToSign(fields map[string]string, names []string) string {
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+fields[name])
	}
	return strings.Join(pairs, ",")
}

func (v *Verifier) sign(data string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign stamps signed_field_names and signature onto the given fields and
// returns the signed copy. Used for building outbound checkout forms.
func (v *Verifier) Sign(fields map[string]string) (map[string]string, error) {
	names := SignedFieldNames(fields)
	if len(names) == 0 {
		return nil, fmt.Errorf("signed_field_names cannot be empty")
	}

	signed := make(map[string]string, len(fields)+2)
	for k, val := range fields {
		signed[k] = val
	}
	signed["signed_field_names"] = strings.Join(names, ",")
	signed["signature"] = v.sign(buildDataToSign(signed, names))
	return signed, nil
}

// Verify authenticates a callback payload. All failure modes collapse into
// models.ErrInvalidSignature so the caller cannot build an oracle out of the
// responses.
func (v *Verifier) Verify(fields map[string]string) error {
	signature := fields["signature"]
	if signature == "" {
		return fmt.Errorf("%w: missing signature", models.ErrInvalidSignature)
	}

	names := SignedFieldNames(fields)
	if len(names) == 0 {
		return fmt.Errorf("%w: missing signed_field_names", models.ErrInvalidSignature)
	}

	expected := v.sign(buildDataToSign(fields, names))
	if subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) != 1 {
		return fmt.Errorf("%w: digest mismatch", models.ErrInvalidSignature)
	}

	if err := v.checkSignedDateTime(fields["signed_date_time"]); err != nil {
		return err
	}
	return nil
}

// checkSignedDateTime bounds replay: the processor stamps payloads with a
// UTC timestamp that must fall inside the accepted window.
func (v *Verifier) checkSignedDateTime(value string) error {
	if v.window <= 0 {
		return nil
	}
	signedAt, err := time.Parse("2006-01-02T15:04:05Z", value)
	if err != nil {
		return fmt.Errorf("%w: bad signed_date_time", models.ErrInvalidSignature)
	}
	drift := v.now().Sub(signedAt)
	if drift < 0 {
		drift = -drift
	}
	if drift > v.window {
		return fmt.Errorf("%w: signed_date_time outside window", models.ErrInvalidSignature)
	}
	return nil
}
