package payment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"paypal-ipn/internal/logger"

	"go.uber.org/zap"
)

const (
	validateCommand = "cmd=_notify-validate&"
	userAgent       = "paypal-ipn-listener/1.0"

	responseVerified = "VERIFIED"
	responseInvalid  = "INVALID"

	// PayPal answers with a single word; anything past this is not a
	// verification response.
	maxResponseBytes = 4 << 10
)

type paypalVerifier struct {
	endpoint   string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewVerifier(endpoint string, timeout time.Duration) Verifier {
	if endpoint == "" {
		logger.L().Warn("PayPal verify endpoint is empty, using sandbox")
		endpoint = EnvSandbox.VerifyURL()
	}

	return &paypalVerifier{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ----------------- Verify -----------------

func (p *paypalVerifier) Verify(ctx context.Context, message []byte) (Outcome, error) {
	log := logger.FromCtx(ctx).With(zap.String("endpoint", p.endpoint))

	body := make([]byte, 0, len(validateCommand)+len(message))
	body = append(body, validateCommand...)
	body = append(body, message...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error("Failed creating verification request", zap.Error(err))
		return OutcomeTransportFailure, fmt.Errorf("%w: %v", ErrVerificationTransport, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("PayPal verification request failed", zap.Error(err))
		return OutcomeTransportFailure, fmt.Errorf("%w: %v", ErrVerificationTransport, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("Failed to read verification response", zap.Error(err))
		return OutcomeTransportFailure, fmt.Errorf("%w: read response: %v", ErrVerificationTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("PayPal returned non-success status",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return OutcomeTransportFailure, fmt.Errorf("%w: http status %d", ErrVerificationTransport, resp.StatusCode)
	}

	log.Debug("PayPal verification response received",
		zap.ByteString("response", bodyBytes),
		zap.Duration("took", time.Since(start)),
	)

	switch string(bodyBytes) {
	case responseVerified:
		return OutcomeVerified, nil
	case responseInvalid:
		return OutcomeRejected, ErrVerificationRejected
	default:
		return OutcomeAmbiguous, fmt.Errorf("%w: %q", ErrVerificationAmbiguous, bodyBytes)
	}
}
