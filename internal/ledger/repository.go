package ledger

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	// RecordCompletedPayment inserts p unless its txn_id is already
	// recorded, in which case duplicate is true and nothing is written.
	RecordCompletedPayment(ctx context.Context, p *CompletedPayment) (id int64, duplicate bool, err error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordCompletedPayment(ctx context.Context, p *CompletedPayment) (int64, bool, error) {
	const q = `
	INSERT INTO paypal_payments (
		txn_id,
		purchase_id,
		payer_email,
		receiver_email,
		gross,
		currency,
		payment_status,
		payload,
		received_at
	)
	VALUES ($1, $2, $3, $4, NULLIF($5, '')::numeric, $6, $7, $8, $9)
	ON CONFLICT (txn_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		p.TxnID,
		p.PurchaseID,
		p.PayerEmail,
		p.ReceiverEmail,
		p.Gross,
		p.Currency,
		p.Status,
		p.Payload,
		p.ReceivedAt,
	).Scan(&id)

	if err != nil {
		// Redelivered notification → idempotent success
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}
