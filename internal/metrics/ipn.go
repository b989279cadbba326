package metrics

import (
	"time"

	"paypal-ipn/internal/payment"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paypal_ipn"

// IPN holds the notification collectors. Build it with NewIPN.
type IPN struct {
	Received      prometheus.Counter
	Verifications *prometheus.CounterVec
	Dispatched    prometheus.Counter
	HandlerErrors prometheus.Counter
	VerifyLatency prometheus.Histogram
}

// NewIPN creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what a Listener without WithMetrics
// gets.
func NewIPN(reg prometheus.Registerer) *IPN {
	m := &IPN{
		Received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_received_total",
			Help:      "Notifications matched by the listener.",
		}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Postback results by outcome.",
		}, []string{"outcome"}),
		Dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatched_total",
			Help:      "Completed payments handed to the payment handler.",
		}),
		HandlerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Payment handler calls that returned an error.",
		}),
		VerifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Postback round-trip time.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Received, m.Verifications, m.Dispatched, m.HandlerErrors, m.VerifyLatency)
	}
	return m
}

// ObserveVerification records one postback and how long it took.
func (m *IPN) ObserveVerification(outcome payment.Outcome, took time.Duration) {
	m.Verifications.WithLabelValues(outcome.String()).Inc()
	m.VerifyLatency.Observe(took.Seconds())
}

// ObserveReadFailure counts a body that could not be read. No postback is
// made, so latency is left alone.
func (m *IPN) ObserveReadFailure() {
	m.Verifications.WithLabelValues(payment.OutcomeTransportFailure.String()).Inc()
}
