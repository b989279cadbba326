package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paypal-ipn/internal/config"
	"paypal-ipn/internal/db"
	"paypal-ipn/internal/ledger"
	"paypal-ipn/internal/logger"
	"paypal-ipn/internal/metrics"
	"paypal-ipn/internal/middleware"
	"paypal-ipn/internal/payment"
	"paypal-ipn/internal/payment/webhook"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := cfg.PayPalVerifyURL
	if endpoint == "" {
		endpoint = payment.Environment(cfg.PayPalEnv).VerifyURL()
	}

	ipnMetrics := metrics.NewIPN(prometheus.DefaultRegisterer)
	ledgerSvc := ledger.NewService(ledger.NewRepository(database))
	listener := webhook.NewListener(
		webhook.PathMatcher(cfg.IPNPath, cfg.IPNRequireAgent),
		payment.NewVerifier(endpoint, cfg.VerifyTimeout),
		ledgerSvc,
		webhook.WithMetrics(ipnMetrics),
	)
	limiter := middleware.NewRateLimiter(ctx)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: setupRouter(listener, limiter, promhttp.Handler()),
	}

	go func() {
		log.Info("IPN listener running",
			zap.String("addr", server.Addr),
			zap.String("ipn_path", cfg.IPNPath),
			zap.String("paypal_env", cfg.PayPalEnv),
			zap.String("verify_url", endpoint),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down, waiting for in-flight notifications")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server exiting")
}

// setupRouter wires the host pipeline. The IPN listener sits in the
// middleware chain ahead of the limiter, so every matched notification is
// acknowledged and everything else is forwarded.
func setupRouter(listener *webhook.Listener, limiter *middleware.RateLimiter, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(listener.Middleware)
	r.Use(limiter.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	return r
}
