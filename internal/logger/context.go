package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	fieldsKey
)

// Log field names shared by the HTTP and notification layers.
const (
	FieldRequestID     = "request_id"
	FieldTxnID         = "txn_id"
	FieldCustom        = "custom"
	FieldPaymentStatus = "payment_status"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFields appends fields to those already carried by ctx. Every logger
// obtained from the returned context through FromCtx includes them.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	prev := fieldsFrom(ctx)
	merged := make([]zap.Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

// WithNotification tags ctx with the identifiers of a decoded notification,
// so the payment handler logs under the same txn_id as the listener.
func WithNotification(ctx context.Context, txnID, custom, status string) context.Context {
	return WithFields(ctx,
		zap.String(FieldTxnID, txnID),
		zap.String(FieldCustom, custom),
		zap.String(FieldPaymentStatus, status),
	)
}

func fieldsFrom(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(fieldsKey).([]zap.Field)
	return fields
}

// FromCtx returns the global logger with the request ID and any fields
// attached through WithFields.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String(FieldRequestID, reqID))
	}
	if fields := fieldsFrom(ctx); len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}
