package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// computeSignature produces the hex HMAC-SHA256 digest Razorpay attaches to
// a completed checkout: the key secret signs "<order_id>|<payment_id>".
func computeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// signatureMatches compares the provided signature against the expected
// digest in constant time.
func signatureMatches(secret, orderID, paymentID, provided string) bool {
	expected := computeSignature(secret, orderID, paymentID)
	normalized := strings.ToLower(strings.TrimSpace(provided))
	return hmac.Equal([]byte(expected), []byte(normalized))
}
