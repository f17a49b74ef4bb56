package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	v := NewVerifier("test_secret")
	good := sign("test_secret", "order_abc", "pay_xyz")

	if !v.Verify("order_abc", "pay_xyz", good) {
		t.Error("valid signature rejected")
	}
	if v.Verify("order_abc", "pay_other", good) {
		t.Error("signature accepted for a different payment id")
	}
	if v.Verify("order_other", "pay_xyz", good) {
		t.Error("signature accepted for a different order id")
	}
	if v.Verify("order_abc", "pay_xyz", "") {
		t.Error("empty signature accepted")
	}
	if v.Verify("order_abc", "pay_xyz", good[:len(good)-1]+"0") {
		t.Error("tampered signature accepted")
	}
	if NewVerifier("other_secret").Verify("order_abc", "pay_xyz", good) {
		t.Error("signature accepted under the wrong secret")
	}
	if SignConfirmation("test_secret", "order_abc", "pay_xyz") != good {
		t.Error("SignConfirmation disagrees with the gateway signing scheme")
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{599, 59900},
		{1049, 104900},
		{0, 0},
		{0.5, 50},
		{10.99, 1099},
		// float artifacts must not truncate a paisa
		{19.99, 1999},
		{1.15, 115},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.amount); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
