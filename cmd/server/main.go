package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/api"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/capitalbank"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/config"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/db"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/events"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/interfaces"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/services"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/observability/otel"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	shutdownTracer, err := otel.InitTracer(ctx, logger)
	if err != nil {
		logger.Fatal("init tracer", zap.Error(err))
	}
	defer shutdownTracer()

	// storage
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("connect mongo", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	cache, err := db.NewCache(ctx, cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, pricing cache disabled", zap.Error(err))
	}

	txns := db.NewTransactionDB(database, logger)
	slots := db.NewSlotDB(database, logger)
	bookings := db.NewBookingDB(database, logger)
	loyalty := db.NewLoyaltyDB(client, database, logger)
	referralStore := db.NewReferralDB(database, logger)
	pricing := db.NewPricingDB(database, cache, logger)

	// events
	var publisher interfaces.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := events.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	// services
	verifier := capitalbank.NewVerifier(cfg.CapitalBank.SecretKey, cfg.CapitalBank.SignatureWindow)
	referrals := services.NewReferralService(bookings, referralStore, loyalty, logger)
	checkout := services.NewCheckoutService(txns, slots, pricing, logger)
	finalizer := services.NewFinalizerService(txns, slots, bookings, loyalty, referrals, pricing, publisher,
		cfg.FinalizationStaleAfter, logger)

	handler := api.NewHandler(checkout, finalizer, referrals, txns, bookings, verifier,
		cfg.CapitalBank, cfg.FrontendOrigin, logger)

	srv := &http.Server{
		Handler:      otelhttp.NewHandler(handler, "payments"),
		Addr:         cfg.HTTPAddr,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(timeout); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
