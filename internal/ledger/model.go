package ledger

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Matches what the gross column (NUMERIC(12,2)) accepts without rounding
// or overflow. PayPal sends negative amounts for refunds and reversals.
var grossPattern = regexp.MustCompile(`^-?\d{1,10}(\.\d{1,2})?$`)

// CompletedPayment is one row of the paypal_payments table.
type CompletedPayment struct {
	ID            int64
	TxnID         string
	PurchaseID    string
	PayerEmail    string
	ReceiverEmail string
	Gross         string
	Currency      string
	Status        string
	Payload       json.RawMessage
	ReceivedAt    time.Time
}

// Validate reports a row the database would refuse. Such a notification
// will be refused on every redelivery too.
func (p *CompletedPayment) Validate() error {
	if p.TxnID == "" {
		return ErrMissingTransactionID
	}
	if p.Gross != "" && !grossPattern.MatchString(p.Gross) {
		return fmt.Errorf("%w: %q", ErrInvalidGross, p.Gross)
	}
	return nil
}
