package payments

import (
	"testing"
)

func TestSignatureMatches(t *testing.T) {
	secret := "rzp_secret"
	orderID := "order_Nxk82ab"
	paymentID := "pay_Nxk91cd"
	signature := computeSignature(secret, orderID, paymentID)

	if !signatureMatches(secret, orderID, paymentID, signature) {
		t.Fatal("expected valid signature to match")
	}
	if !signatureMatches(secret, orderID, paymentID, "  "+signature+"  ") {
		t.Fatal("expected whitespace-padded signature to match")
	}
}

func TestSignatureMatchesRejectsSingleBitFlip(t *testing.T) {
	secret := "rzp_secret"
	orderID := "order_Nxk82ab"
	paymentID := "pay_Nxk91cd"
	signature := []byte(computeSignature(secret, orderID, paymentID))

	// Flip one hex digit at a time; every mutation must fail.
	for i := range signature {
		mutated := make([]byte, len(signature))
		copy(mutated, signature)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		if signatureMatches(secret, orderID, paymentID, string(mutated)) {
			t.Fatalf("expected mutated signature at index %d to fail", i)
		}
	}
}

func TestSignatureMatchesRejectsWrongSecret(t *testing.T) {
	orderID := "order_Nxk82ab"
	paymentID := "pay_Nxk91cd"
	signature := computeSignature("rzp_secret", orderID, paymentID)

	if signatureMatches("other_secret", orderID, paymentID, signature) {
		t.Fatal("expected signature from another secret to fail")
	}
}

func TestSignatureMatchesRejectsSwappedIDs(t *testing.T) {
	secret := "rzp_secret"
	signature := computeSignature(secret, "order_a", "pay_b")

	if signatureMatches(secret, "pay_b", "order_a", signature) {
		t.Fatal("expected swapped order and payment ids to fail")
	}
}
