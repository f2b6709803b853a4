package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/rental-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/rental-checkout/internal/cache"
	"github.com/aaravmahajanofficial/rental-checkout/internal/config"
	"github.com/aaravmahajanofficial/rental-checkout/internal/health"
	"github.com/aaravmahajanofficial/rental-checkout/internal/metrics"
	service "github.com/aaravmahajanofficial/rental-checkout/internal/services"
	"github.com/aaravmahajanofficial/rental-checkout/internal/tracing"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/backend"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cart storage
	var cartCache cache.Cache
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cartCache = cache.NewRedisCache(client, cfg.Cart.MaxAge)
	default:
		cartCache = cache.NewMemoryCache(cfg.Cart.MaxAge)
	}

	defer func() {
		if err := cartCache.Close(); err != nil {
			slog.Error("⚠️ Error closing cart storage", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Cart storage closed")
		}
	}()

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid API key not set, confirmation emails are disabled")
	}

	sessionService := service.NewSessionService(cartCache, backendClient, service.SessionConfig{
		KeyPrefix:     cfg.Cart.KeyPrefix,
		MaxAge:        cfg.Cart.MaxAge,
		SubmitTimeout: cfg.Backend.Timeout,
		IdleTTL:       cfg.Cart.SessionTTL,
		MaxSessions:   cfg.Cart.MaxSessions,
	}, logger)
	checkoutService := service.NewCheckoutService(backendClient, emailService, logger)

	cartHandler := handlers.NewCartHandler(sessionService)
	checkoutHandler := handlers.NewCheckoutHandler(sessionService, checkoutService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.String("version", health.Version))

	// Setup router
	apiMux := http.NewServeMux()
	handlers.Register(apiMux, cartHandler, checkoutHandler)

	// Middleware chaining
	var api http.Handler = metrics.Middleware(apiMux)
	api = middleware.Session(api)

	routerMux := http.NewServeMux()
	routerMux.Handle("/api/", api)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}

}
