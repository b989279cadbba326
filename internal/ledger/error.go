package ledger

import "errors"

var (
	ErrMissingTransactionID = errors.New("notification has no txn_id")
	ErrInvalidGross         = errors.New("mc_gross does not fit NUMERIC(12,2)")
	ErrFailedRecordPayment  = errors.New("failed to record payment")
)
