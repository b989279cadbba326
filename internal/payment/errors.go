package payment

import "errors"

var (
	ErrVerificationRejected  = errors.New("paypal rejected notification")
	ErrVerificationAmbiguous = errors.New("paypal returned unrecognized verification response")
	ErrVerificationTransport = errors.New("paypal verification round-trip failed")
)
