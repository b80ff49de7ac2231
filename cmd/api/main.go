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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/bloomview/bloomview-api/internal/config"
	"github.com/bloomview/bloomview-api/internal/entity"
	"github.com/bloomview/bloomview-api/internal/infra/database"
	"github.com/bloomview/bloomview-api/internal/infra/http/handlers"
	"github.com/bloomview/bloomview-api/internal/infra/http/middleware"
	"github.com/bloomview/bloomview-api/internal/infra/integration/gemini"
	"github.com/bloomview/bloomview-api/internal/infra/mail"
	"github.com/bloomview/bloomview-api/internal/infra/queue"
	"github.com/bloomview/bloomview-api/internal/infra/sqlite"
	"github.com/bloomview/bloomview-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 1. Storage: Postgres when configured, SQLite demo mode otherwise.
	var (
		leadRepo entity.LeadRepositoryInterface
		subRepo  entity.SubscriberRepositoryInterface
		healthDB *sql.DB
	)
	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connecting to Postgres: %v", err)
		}
		defer db.Close()

		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("ensuring schema: %v", err)
		}

		leadRepo = database.NewLeadRepository(db)
		subRepo = database.NewSubscriberRepository(db)
		healthDB = db
	} else {
		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			log.Fatalf("opening demo store: %v", err)
		}
		defer store.Close()

		log.Printf("DATABASE_URL not set, running in demo mode (SQLite under %s)", cfg.DataDir)
		leadRepo = store
		subRepo = store
		healthDB = store.DB()
	}

	// 2. Notification pipeline (optional).
	var producer usecase.LeadEventPublisher
	var worker *queue.Worker
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("RabbitMQ unavailable, lead notifications disabled: %v", err)
		} else {
			defer rmq.Close()
			producer = queue.NewProducer(rmq.Conn, rmq.Ch)

			if cfg.MailHost != "" && cfg.LeadNotifyTo != "" {
				sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.LeadNotifyTo)
				worker = queue.NewWorker(rmq.Ch, sender)
			} else {
				log.Printf("MAIL_HOST/LEAD_NOTIFY_TO not set, captured leads are queued but not emailed")
			}
		}
	}

	// 3. Assistant (optional).
	var assistant usecase.Assistant
	if cfg.GeminiAPIKey != "" {
		assistant = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Printf("GEMINI_API_KEY not set, assistant serves fallback content only")
	}

	// 4. Usecases.
	submitUC := usecase.NewSubmitInquiryUseCase(leadRepo, producer)
	subscribeUC := usecase.NewSubscribeUseCase(subRepo)

	// 5. Handlers.
	leadHandler := handlers.NewLeadHandler(submitUC)
	adminHandler := handlers.NewAdminLeadHandler(leadRepo)
	subscribeHandler := handlers.NewSubscribeHandler(subscribeUC)
	healthHandler := handlers.NewHealthHandler(healthDB)
	assistantHandler := handlers.NewAssistantHandler(assistant)

	// 6. Router.
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Handle)
		r.Post("/leads", leadHandler.Capture)
		r.Post("/subscribe", subscribeHandler.Handle)
		r.Post("/assistant/chat", assistantHandler.Chat)
		r.Get("/posts/trending", assistantHandler.TrendingPosts)

		// Admin surface: passcode checked on every request, no sessions.
		r.Group(func(r chi.Router) {
			r.Use(middleware.PasscodeGuard(cfg.AdminPasscode))
			r.Get("/leads", adminHandler.List)
			r.Patch("/leads/{id}", adminHandler.UpdateStatus)
			r.Delete("/leads/{id}", adminHandler.Delete)
		})
	})

	// 7. Run until interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Bloomview API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if worker != nil {
		g.Go(func() error {
			err := worker.Start(ctx, queue.QueueName)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
