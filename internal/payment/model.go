package payment

// Fields is a decoded IPN message, keyed by PayPal variable name.
type Fields map[string]string

// IPN variables this service reads.
const (
	FieldPaymentStatus = "payment_status"
	FieldTxnID         = "txn_id"
	FieldCustom        = "custom"
	FieldPayerEmail    = "payer_email"
	FieldReceiverEmail = "receiver_email"
	FieldGross         = "mc_gross"
	FieldCurrency      = "mc_currency"
)

const StatusCompleted = "Completed"

// Outcome is the result of the IPN postback.
type Outcome int

const (
	OutcomeTransportFailure Outcome = iota
	OutcomeVerified
	OutcomeRejected
	OutcomeAmbiguous
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeRejected:
		return "rejected"
	case OutcomeAmbiguous:
		return "ambiguous"
	default:
		return "transport_failure"
	}
}

type Environment string

const (
	EnvSandbox Environment = "sandbox"
	EnvLive    Environment = "live"
)

const (
	sandboxURL = "https://www.sandbox.paypal.com/cgi-bin/webscr"
	liveURL    = "https://www.paypal.com/cgi-bin/webscr"
)

// VerifyURL returns the postback endpoint. Anything other than EnvLive
// resolves to the sandbox so a misconfiguration never hits production.
func (e Environment) VerifyURL() string {
	if e == EnvLive {
		return liveURL
	}
	return sandboxURL
}

// CheckoutURL is the base URL for Payments Standard links. PayPal serves
// both from the same script.
func (e Environment) CheckoutURL() string {
	return e.VerifyURL()
}

// BillingCycleUnit is the t3 value of a subscription link.
type BillingCycleUnit string

const (
	CycleDays   BillingCycleUnit = "D"
	CycleWeeks  BillingCycleUnit = "W"
	CycleMonths BillingCycleUnit = "M"
	CycleYears  BillingCycleUnit = "Y"
)

// LinkRequest describes a Payments Standard checkout link.
type LinkRequest struct {
	BusinessEmail string
	ItemName      string
	Amount        float64
	Currency      string
	PurchaseID    string
	ReturnURL     string
	CancelURL     string
	NoShipping    bool

	// SubscriptionPeriod > 0 turns the link into a subscription billed every
	// SubscriptionPeriod CycleUnit. CycleUnit defaults to days.
	SubscriptionPeriod int
	CycleUnit          BillingCycleUnit
}
