package ledger

import (
	"encoding/json"
	"time"

	"paypal-ipn/internal/payment"
)

// MapFieldsToPayment builds a ledger row from a decoded notification. The
// full field set is kept as JSON next to the extracted columns.
func MapFieldsToPayment(fields payment.Fields, receivedAt time.Time) (*CompletedPayment, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	return &CompletedPayment{
		TxnID:         fields[payment.FieldTxnID],
		PurchaseID:    fields[payment.FieldCustom],
		PayerEmail:    fields[payment.FieldPayerEmail],
		ReceiverEmail: fields[payment.FieldReceiverEmail],
		Gross:         fields[payment.FieldGross],
		Currency:      fields[payment.FieldCurrency],
		Status:        fields[payment.FieldPaymentStatus],
		Payload:       payload,
		ReceivedAt:    receivedAt,
	}, nil
}
