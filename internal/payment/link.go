package payment

import (
	"strconv"
	"strings"
)

const (
	cmdBuyNow       = "_xclick"
	cmdSubscription = "_xclick-subscriptions"
)

type param struct {
	key   string
	value string
}

// GenerateLink builds a Payments Standard checkout URL. Input is not
// validated; PayPal rejects bad links on its side.
func GenerateLink(env Environment, req LinkRequest) string {
	amount := formatAmount(req.Amount)

	params := []param{
		{"business", req.BusinessEmail},
		{"item_name", req.ItemName},
		{"amount", amount},
		{"currency_code", req.Currency},
		{"custom", req.PurchaseID},
	}

	if req.SubscriptionPeriod > 0 {
		unit := req.CycleUnit
		if unit == "" {
			unit = CycleDays
		}
		params = append(params,
			param{"cmd", cmdSubscription},
			param{"p3", strconv.Itoa(req.SubscriptionPeriod)},
			param{"t3", string(unit)},
			param{"a3", amount},
		)
	} else {
		params = append(params, param{"cmd", cmdBuyNow})
	}

	if req.NoShipping {
		params = append(params, param{"no_shipping", "1"})
	} else {
		params = append(params, param{"no_shipping", "0"})
	}

	if req.ReturnURL != "" {
		params = append(params, param{"return", req.ReturnURL})
	}
	if req.CancelURL != "" {
		params = append(params, param{"cancel_return", req.CancelURL})
	}

	var query strings.Builder
	for i, p := range params {
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(p.key)
		query.WriteByte('=')
		query.WriteString(Encode(p.value))
	}

	return env.CheckoutURL() + "?" + query.String()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
