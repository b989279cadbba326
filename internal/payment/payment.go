// internal/payment/payment.go
package payment

import (
	"context"
)

// Verifier authenticates an IPN message by echoing it back to PayPal.
// Any outcome other than OutcomeVerified comes with a non-nil error.
type Verifier interface {
	Verify(ctx context.Context, message []byte) (Outcome, error)
}

// IsCompletedPayment reports whether the decoded notification is a
// completed payment. A missing status is a plain negative.
func IsCompletedPayment(fields Fields) bool {
	status, ok := fields[FieldPaymentStatus]
	return ok && status == StatusCompleted
}
