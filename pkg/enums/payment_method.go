package enums

import "fmt"

// PaymentMethod distinguishes how a support payment reached the creator.
type PaymentMethod string

const (
	// PaymentMethodGateway marks payments settled through the Razorpay
	// checkout flow and proven by a signature-verified callback.
	PaymentMethodGateway PaymentMethod = "gateway"
	// PaymentMethodDirect marks payments claimed outside the gateway
	// (UPI/bank transfer) that the creator must confirm by hand.
	PaymentMethodDirect PaymentMethod = "direct"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodGateway,
	PaymentMethodDirect,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
