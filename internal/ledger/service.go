package ledger

import (
	"context"
	"fmt"
	"time"

	"paypal-ipn/internal/logger"
	"paypal-ipn/internal/payment"

	"go.uber.org/zap"
)

// Service records completed payments. It satisfies webhook.Handler.
type Service interface {
	HandlePayment(ctx context.Context, fields payment.Fields) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) HandlePayment(ctx context.Context, fields payment.Fields) error {
	log := logger.FromCtx(ctx)

	p, err := MapFieldsToPayment(fields, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRecordPayment, err)
	}

	// Redelivery would carry the same fields, so this is not worth a retry.
	if err := p.Validate(); err != nil {
		log.Error("cannot record payment", zap.Error(err))
		return nil
	}

	id, duplicate, err := s.repo.RecordCompletedPayment(ctx, p)
	if err != nil {
		log.Error("failed to record payment", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedRecordPayment, err)
	}

	if duplicate {
		log.Info("payment already recorded, ignoring redelivery")
		return nil
	}

	log.Info("payment recorded",
		zap.Int64("payment_id", id),
		zap.String("gross", p.Gross),
		zap.String("currency", p.Currency),
	)
	return nil
}
