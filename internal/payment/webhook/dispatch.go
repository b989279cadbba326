package webhook

import (
	"context"
	"fmt"
	"net/http"

	"paypal-ipn/internal/logger"
	"paypal-ipn/internal/payment"

	"go.uber.org/zap"
)

// Handler receives verified, completed payments. It runs on the request
// goroutine and may be called concurrently for different notifications.
// PayPal redelivers notifications, so implementations must be idempotent
// on txn_id.
type Handler interface {
	HandlePayment(ctx context.Context, fields payment.Fields) error
}

type HandlerFunc func(ctx context.Context, fields payment.Fields) error

func (f HandlerFunc) HandlePayment(ctx context.Context, fields payment.Fields) error {
	return f(ctx, fields)
}

// ErrorHandler is the host's answer to a failing Handler. It owns the
// response when called.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler answers 500 so PayPal redelivers the notification.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("payment handler failed", zap.Error(err))
	http.Error(w, "failed to process notification", http.StatusInternalServerError)
}

// dispatch calls h exactly once. Panics are left to the host's recovery.
func dispatch(ctx context.Context, h Handler, fields payment.Fields) error {
	if err := h.HandlePayment(ctx, fields); err != nil {
		return fmt.Errorf("payment handler: %w", err)
	}
	return nil
}
