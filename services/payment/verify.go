package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks gateway confirmation signatures. The gateway signs
// "<order_id>|<payment_id>" with HMAC-SHA256 under the shared key secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify recomputes the expected signature and compares in constant time.
func (v *Verifier) Verify(orderID, paymentID, signature string) bool {
	expected := SignConfirmation(v.secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignConfirmation produces the confirmation signature for an order/payment
// pair. Integrations that simulate gateway callbacks use it directly.
func SignConfirmation(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
