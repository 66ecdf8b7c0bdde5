package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// PaymentMethod is the payment classification relevant to carrier capability:
// cash-on-delivery needs a carrier that collects cash, everything else is prepaid.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// PaymentPrepaid covers every online-paid order (cards, UPI, wallets and the
	// other gateway variants all collapse to prepaid for assignment purposes).
	PaymentPrepaid

	// PaymentCOD is cash-on-delivery; it restricts assignment to carriers that
	// support cash collection.
	PaymentCOD
)

// paymentAliases maps external payment identifiers onto the two classes the
// engine cares about. Gateway-specific variants are all prepaid.
var paymentAliases = map[string]PaymentMethod{
	"prepaid":    PaymentPrepaid,
	"card":       PaymentPrepaid,
	"upi":        PaymentPrepaid,
	"wallet":     PaymentPrepaid,
	"netbanking": PaymentPrepaid,
	"stripe":     PaymentPrepaid,
	"cod":        PaymentCOD,
}

// ParsePaymentMethod maps an external payment identifier to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if pm, ok := paymentAliases[s]; ok {
		return pm, nil
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method",
		fmt.Errorf("%q is not a known payment method", s),
	)
}

// String returns the canonical name of the payment method.
func (p PaymentMethod) String() string {
	switch p {
	case PaymentPrepaid:
		return "prepaid"
	case PaymentCOD:
		return "cod"
	default:
		return "unknown"
	}
}

// IsCOD reports whether the order is paid by cash on delivery.
func (p PaymentMethod) IsCOD() bool {
	return p == PaymentCOD
}

// Validate rejects PaymentUnknown and out-of-range values.
func (p PaymentMethod) Validate() error {
	if p != PaymentPrepaid && p != PaymentCOD {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method",
			fmt.Errorf("%d is not a valid payment method", p),
		)
	}
	return nil
}
