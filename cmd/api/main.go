package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"casecraft/internal/config"
	"casecraft/internal/db"
	"casecraft/internal/httpserver"
	"casecraft/internal/mailer"
	"casecraft/internal/payments"
	configrepo "casecraft/internal/repository/configuration"
	orderrepo "casecraft/internal/repository/order"
	userrepo "casecraft/internal/repository/user"
	eventrepo "casecraft/internal/repository/webhookevent"
	checkoutsvc "casecraft/internal/service/checkout"
	configsvc "casecraft/internal/service/configuration"
	paymentsvc "casecraft/internal/service/payment"
	"casecraft/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store, err := storage.NewCloudinary(cfg.CloudinaryURL, logger)
	if err != nil {
		logger.Fatalf("init cloudinary: %v", err)
	}

	configRepo := configrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	eventRepo := eventrepo.NewPostgres(dbpool)

	configService := configsvc.New(configRepo, store, configsvc.NewHTTPFetcher(), logger)
	checkoutService := checkoutsvc.New(configRepo, userRepo, orderRepo, payments.NewClient(cfg.StripeAPIKey), cfg.PublicBaseURL)
	paymentService := paymentsvc.New(
		payments.NewVerifier(cfg.StripeWebhookSecret),
		orderRepo,
		eventRepo,
		mailer.NewResend(cfg.ResendAPIKey, cfg.EmailFrom, logger),
		logger,
	)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Configurations: configService,
		Checkout:       checkoutService,
		Orders:         orderRepo,
		Payments:       paymentService,
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
