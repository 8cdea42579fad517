package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/leadpulse/internal/config"
	"github.com/xavierca1/leadpulse/internal/demo"
	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/infra/database"
	"github.com/xavierca1/leadpulse/internal/infra/http/handlers"
	"github.com/xavierca1/leadpulse/internal/infra/http/middleware"
	"github.com/xavierca1/leadpulse/internal/infra/mail"
	"github.com/xavierca1/leadpulse/internal/infra/queue"
	"github.com/xavierca1/leadpulse/internal/infra/worker"
	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "leadpulse:", err)
		os.Exit(1)
	}
}

func run() error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Stores
	var (
		leadRepo  entity.LeadRepositoryInterface
		db        *sql.DB
		storeName = "memory"
	)
	if cfg.Database.URL != "" {
		db, err = database.NewDBConnection(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
		leadRepo = database.NewLeadRepository(db)
		storeName = "postgres"
	} else {
		leadRepo = database.NewMemoryLeadRepository()
	}
	log.Info("lead store ready", "store", storeName)

	integrationRepo := database.NewMemoryIntegrationRepository(
		usecase.DefaultIntegrations(cfg.Webhook.URL, cfg.Webhook.APIKey)...,
	)

	generator := demo.NewGenerator(cfg.Demo.RandomSeed, nil)
	if err := seedLeads(ctx, leadRepo, generator, cfg.Demo.SeedCount); err != nil {
		return err
	}

	// 2. Messaging
	var (
		publisher usecase.LeadEventPublisher = queue.NopPublisher{Log: log}
		rabbitMQ  *queue.RabbitMQ
	)
	if cfg.Queue.URL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Ch)
	}

	var mailSender *mail.EmailSender
	if cfg.Mail.Enabled() {
		mailSender = mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.From, cfg.Mail.Recipients,
		)
		mailSender.Location = cfg.Location
	}

	// 3. UseCases
	metrics := middleware.LeadMetrics{}
	createUC := usecase.NewCreateLeadUseCase(leadRepo, publisher, metrics, log)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo, publisher, metrics, log)
	queryUC := usecase.NewQueryLeadsUseCase(leadRepo, cfg.Location)
	integrationsUC := usecase.NewManageIntegrationsUseCase(integrationRepo)

	// 4. Workers
	startWorkers(ctx, cfg, log, workerDeps{
		rabbitMQ:  rabbitMQ,
		mail:      mailSender,
		createUC:  createUC,
		queryUC:   queryUC,
		generator: generator,
	})

	// 5. Router
	health := handlers.NewHealthHandler(nil, nil, storeName)
	if db != nil {
		health.DB = db
	}
	if rabbitMQ != nil {
		health.RabbitMQ = rabbitMQ.Conn
	}

	router := handlers.NewRouter(handlers.Routes{
		Leads:          handlers.NewLeadHandler(createUC, updateUC, queryUC, log),
		Analytics:      handlers.NewAnalyticsHandler(queryUC, log),
		Exports:        handlers.NewExportHandler(queryUC, log),
		Integrations:   handlers.NewIntegrationHandler(integrationsUC, log),
		Webhook:        handlers.NewWebhookHandler(integrationsUC, createUC, log),
		Health:         health,
		CORSOrigins:    cfg.Server.CORSOrigins,
		WebhookLimiter: middleware.NewRateLimiter(ctx, cfg.Webhook.RatePerMinute, cfg.Webhook.Burst).TrustProxyHeaders(cfg.Webhook.TrustProxyHeaders),
		RequestLogging: true,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logger.ErrorLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port, "webhook_url", cfg.Webhook.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedLeads fills an empty store with generated history.
func seedLeads(ctx context.Context, repo entity.LeadRepositoryInterface, g *demo.Generator, n int) error {
	if n == 0 {
		return nil
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count leads: %w", err)
	}
	if count > 0 {
		return nil
	}
	return demo.Seed(ctx, repo, g, n)
}

type workerDeps struct {
	rabbitMQ  *queue.RabbitMQ
	mail      *mail.EmailSender
	createUC  *usecase.CreateLeadUseCase
	queryUC   *usecase.QueryLeadsUseCase
	generator *demo.Generator
}

func startWorkers(ctx context.Context, cfg config.Config, log logger.Logger, deps workerDeps) {
	if cfg.Demo.SynthesizerEnabled {
		synth := worker.NewLeadSynthesizer(
			deps.createUC, deps.generator,
			cfg.Demo.SynthesizerInterval, cfg.Demo.SynthesizerChance,
			log.With("worker", "synthesizer"),
		)
		go synth.Start(ctx)
	}

	if deps.mail == nil {
		log.Warn("smtp not configured, e-mail alerts disabled")
		return
	}

	if deps.rabbitMQ != nil {
		w := queue.NewWorker(deps.rabbitMQ.Ch, deps.mail, queue.AlertSettings{
			NewLead:      cfg.Notifications.NewLead,
			StatusChange: cfg.Notifications.StatusChange,
		}, log.With("worker", "notifications"))
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				log.Error("notification worker exited", "error", err)
			}
		}()
	} else {
		log.Warn("no broker configured, lead alerts disabled")
	}

	if cfg.Notifications.DailySummary {
		job := worker.NewDailySummaryJob(
			cfg.Notifications.SummaryCron, deps.queryUC, deps.mail,
			cfg.Location, log.With("worker", "daily_summary"),
		)
		if err := job.Start(ctx); err != nil {
			log.Error("daily summary not scheduled", "error", err)
		}
	}
}
