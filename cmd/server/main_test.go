package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"paypal-ipn/internal/metrics"
	"paypal-ipn/internal/middleware"
	"paypal-ipn/internal/payment"
	"paypal-ipn/internal/payment/webhook"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
)

const ipnPath = "/webhook/paypal/ipn"

type testRouter struct {
	http.Handler
	dispatched *atomic.Int32
}

func newTestRouter(t *testing.T) testRouter {
	t.Helper()

	paypal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("VERIFIED"))
	}))
	t.Cleanup(paypal.Close)

	dispatched := new(atomic.Int32)
	handler := webhook.HandlerFunc(func(ctx context.Context, fields payment.Fields) error {
		dispatched.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	reg := prometheus.NewRegistry()
	listener := webhook.NewListener(
		webhook.PathMatcher(ipnPath, false),
		payment.NewVerifier(paypal.URL, time.Second),
		handler,
		webhook.WithMetrics(metrics.NewIPN(reg)),
	)

	router := setupRouter(listener, middleware.NewRateLimiter(ctx), promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return testRouter{Handler: router, dispatched: dispatched}
}

func TestSetupRouter(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Health Check", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/healthz", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("PayPal IPN", func(t *testing.T) {
		body := "payment_status=Completed&txn_id=ABC&custom=order-1"
		req, _ := http.NewRequest("POST", ipnPath, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
		assert.Equal(t, int32(1), router.dispatched.Load())
	})

	t.Run("Unknown Route", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/webhook/other", strings.NewReader("payment_status=Completed"))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, int32(1), router.dispatched.Load())
	})

	t.Run("Metrics", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/metrics", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "paypal_ipn_notifications_received_total 1")
		assert.Contains(t, body, `paypal_ipn_verifications_total{outcome="verified"} 1`)
		assert.Contains(t, body, "paypal_ipn_dispatched_total 1")
	})
}

func TestSetupRouter_NotificationBurstIsAcknowledged(t *testing.T) {
	router := newTestRouter(t)

	codes := make(map[int]int)
	for i := 0; i < 60; i++ {
		body := "payment_status=Completed&txn_id=TX" + string(rune('A'+i%26)) + string(rune('0'+i/26))
		req := httptest.NewRequest(http.MethodPost, ipnPath, strings.NewReader(body))
		req.RemoteAddr = "173.0.82.126:443"
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)
		codes[rr.Code]++
	}

	assert.Equal(t, map[int]int{http.StatusOK: 60}, codes)
	assert.Equal(t, int32(60), router.dispatched.Load())

	// Host routes from the same address are still limited.
	var limited bool
	for i := 0; i < 30 && !limited; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "173.0.82.126:443"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		limited = rr.Code == http.StatusTooManyRequests
	}
	assert.True(t, limited)
}
