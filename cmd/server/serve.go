package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-dashboard/internal/config"
	"github.com/iliyamo/restaurant-dashboard/internal/database"
	"github.com/iliyamo/restaurant-dashboard/internal/handler"
	"github.com/iliyamo/restaurant-dashboard/internal/middleware"
	"github.com/iliyamo/restaurant-dashboard/internal/payment"
	"github.com/iliyamo/restaurant-dashboard/internal/queue"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/router"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
)

func serveCmd() *cobra.Command {
	var (
		migrate   bool
		keepAlive time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, webhooks and change stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate, keepAlive)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	cmd.Flags().DurationVar(&keepAlive, "stream-keepalive", 25*time.Second, "interval of SSE keep-alive comments")
	return cmd
}

func runServe(parent context.Context, migrate bool, keepAlive time.Duration) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	catalog, err := config.LoadCatalog(cfg.PacksFile)
	if err != nil {
		return fmt.Errorf("load packs: %w", err)
	}

	// Optional: nil disables the limiter and the cache.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	// ---- Change feed ----
	hub := queue.NewHub(32)
	publisher := queue.NewPublisher(cfg.RabbitURL, cfg.ChangesExchange, hub)
	defer publisher.Close()
	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartChangeConsumer(ctx, cfg.RabbitURL, cfg.ChangesExchange, hub); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("change-consumer stopped: %v", err)
			}
		}()
	} else {
		log.Printf("RABBITMQ_URL not set; change events stay in this instance")
	}

	// ---- Repositories ----
	profiles := repository.NewProfileRepo(db)
	reservations := repository.NewReservationRepo(db)
	orders := repository.NewOrderRepo(db)
	menu := repository.NewMenuRepo(db)
	recharges := repository.NewRechargeRepo(db)
	subscribers := repository.NewSubscriberRepo(db)
	agents := repository.NewVocalAgentRepo(db)
	notifications := repository.NewNotificationRepo(db)

	webhookLogs, err := openWebhookLog(ctx, cfg, db)
	if err != nil {
		return err
	}

	// ---- Services ----
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.CheckoutCurrency, cfg.BaseURL)
	notifier := service.NewNotifier(notifications, publisher)
	auditor := service.NewAuditor(webhookLogs)
	statusSvc := service.NewStatusService(reservations, orders, publisher)
	intakeSvc := service.NewIntakeService(profiles, reservations, orders, menu, publisher)
	menuSvc := service.NewMenuService(menu)
	minutesSvc := service.NewMinutesService(profiles, recharges, gateway, catalog, notifier, publisher)
	paymentSvc := service.NewPaymentService(gateway, recharges, subscribers, agents, profiles, notifier, catalog, publisher)
	forwarder := service.NewForwarder(cfg.ForwardURL, &http.Client{Timeout: cfg.ForwardTimeout}, profiles, subscribers)
	if cfg.ForwardURL == "" {
		log.Printf("AUTOMATION_FORWARD_URL not set; event relay disabled")
	}

	// ---- HTTP ----
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e, db)
	router.RegisterWebhooks(e,
		handler.NewAutomationWebhookHandler(intakeSvc, auditor),
		handler.NewStripeWebhookHandler(paymentSvc, auditor),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)
	router.RegisterDashboard(e, router.Dashboard{
		Status: handler.NewStatusHandler(statusSvc),
		Menu: handler.NewMenuHandler(menuSvc, func(ctx context.Context, tenantID string) {
			middleware.InvalidateTenant(ctx, cacheCfg, rdb, tenantID)
		}),
		Minutes:       handler.NewMinutesHandler(minutesSvc),
		Notifications: handler.NewNotificationHandler(notifier),
		Forward:       handler.NewForwardHandler(forwarder, auditor),
		Stream:        handler.NewStreamHandler(hub, keepAlive),
	}, cfg.JWTSecret, middleware.NewRedisCache(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openWebhookLog picks the audit store for webhook requests.
func openWebhookLog(ctx context.Context, cfg config.Config, db *sql.DB) (service.WebhookLogStore, error) {
	switch cfg.WebhookLogBackend {
	case "", "mysql":
		return repository.NewWebhookLogRepo(db), nil
	case "dynamodb":
		ddb, err := database.OpenDynamoDB(ctx, database.DynamoSettings{
			Region:    cfg.AWSRegion,
			Endpoint:  cfg.DynamoEndpoint,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("open dynamodb: %w", err)
		}
		return repository.NewWebhookLogDynamoRepo(ddb, cfg.WebhookLogsTable), nil
	}
	return nil, fmt.Errorf("unknown WEBHOOK_LOG_BACKEND %q", cfg.WebhookLogBackend)
}
