package sales

import (
	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
)

// ResolvePayment computes the settlement for a sale total.
//
// Transfer settles exactly: tendered is forced to the total and any passed
// value is ignored; change is zero. Cash requires tendered >= total and
// returns the exact integer change. All arithmetic is exact minor-unit
// integer arithmetic.
func ResolvePayment(total types.MinorUnits, method PaymentMethod, tendered types.MinorUnits) (Payment, error) {
	switch method {
	case PaymentTransfer:
		return Payment{Method: PaymentTransfer, Tendered: total, Change: 0}, nil

	case PaymentCash:
		if tendered < total {
			return Payment{}, apperror.NewInsufficientPayment(total.Int64(), tendered.Int64())
		}
		return Payment{Method: PaymentCash, Tendered: tendered, Change: tendered - total}, nil

	default:
		return Payment{}, apperror.NewValidation("unknown payment method").
			WithDetail("method", string(method))
	}
}
