package webhook

import (
	"io"
	"net/http"
	"time"

	"paypal-ipn/internal/logger"
	"paypal-ipn/internal/metrics"
	"paypal-ipn/internal/payment"

	"go.uber.org/zap"
)

const (
	ackBody = "OK"

	// IPN messages are a few KB; the cap only guards the read.
	maxNotificationBytes = 1 << 20
)

// Listener is the IPN stage of an HTTP middleware chain. It holds no
// per-request state and is safe for concurrent use.
type Listener struct {
	match    Matcher
	verifier payment.Verifier
	handler  Handler
	onError  ErrorHandler
	metrics  *metrics.IPN
}

type Option func(*Listener)

// WithMetrics records outcomes into m. Without it the Listener counts into
// an unregistered set.
func WithMetrics(m *metrics.IPN) Option {
	return func(l *Listener) {
		if m != nil {
			l.metrics = m
		}
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(l *Listener) {
		l.onError = fn
	}
}

func NewListener(match Matcher, verifier payment.Verifier, handler Handler, opts ...Option) *Listener {
	l := &Listener{
		match:    match,
		verifier: verifier,
		handler:  handler,
		onError:  DefaultErrorHandler,
		metrics:  metrics.NewIPN(nil),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Middleware serves matched notifications and hands everything else to next.
func (l *Listener) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.match(r) {
			next.ServeHTTP(w, r)
			return
		}

		l.metrics.Received.Inc()
		if err := l.process(w, r); err != nil {
			l.metrics.HandlerErrors.Inc()
			l.onError(w, r, err)
			return
		}

		acknowledge(w)
	})
}

// process runs verification, decoding and dispatch. A non-nil error only
// comes from the Handler; every other failure is logged and swallowed.
func (l *Listener) process(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	message, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNotificationBytes))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to read IPN body",
			zap.String("outcome", payment.OutcomeTransportFailure.String()),
			zap.Error(err),
		)
		l.metrics.ObserveReadFailure()
		return nil
	}

	start := time.Now()
	outcome, err := l.verifier.Verify(ctx, message)
	took := time.Since(start)
	l.metrics.ObserveVerification(outcome, took)

	ctx = logger.WithFields(ctx,
		zap.String("outcome", outcome.String()),
		zap.Duration("verify_duration", took),
	)

	switch outcome {
	case payment.OutcomeVerified:
	case payment.OutcomeTransportFailure:
		logger.FromCtx(ctx).Error("IPN verification failed", zap.Error(err))
		return nil
	default:
		logger.FromCtx(ctx).Warn("IPN not verified", zap.Error(err))
		return nil
	}

	fields := payment.Decode(string(message))
	ctx = logger.WithNotification(ctx,
		fields[payment.FieldTxnID],
		fields[payment.FieldCustom],
		fields[payment.FieldPaymentStatus],
	)
	log := logger.FromCtx(ctx)

	if !payment.IsCompletedPayment(fields) {
		log.Info("verified IPN is not a completed payment, skipping")
		return nil
	}

	log.Info("dispatching completed payment")
	l.metrics.Dispatched.Inc()
	return dispatch(ctx, l.handler, fields)
}

func acknowledge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, ackBody)
}
