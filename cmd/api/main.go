package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/lead-insights/internal/config"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/database"
	"github.com/xavierca1/lead-insights/internal/infra/http/handlers"
	"github.com/xavierca1/lead-insights/internal/infra/http/middleware"
	"github.com/xavierca1/lead-insights/internal/infra/integration/agent"
	"github.com/xavierca1/lead-insights/internal/infra/mail"
	"github.com/xavierca1/lead-insights/internal/infra/queue"
	"github.com/xavierca1/lead-insights/internal/logger"
	"github.com/xavierca1/lead-insights/internal/usecase"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.WithError(err).Fatal("RabbitMQ connection failed")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("could not create upload dir")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	callRepo := database.NewCallRepository(db)
	emailRepo := database.NewEmailRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	followUpRepo := database.NewFollowUpRepository(db)
	emailStore := database.NewEmailStore(db)

	// 2. Gateways and adapters
	agentClient := agent.NewClient(cfg.AgentURL)
	producer := queue.NewProducer(rabbitMQ.Ch)
	hub := broadcast.NewHub()

	var mailSender handlers.ResponseSender
	if cfg.MailConfigured() {
		mailSender = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	}

	// 3. Use cases
	processCallUC := usecase.NewProcessCallUseCase(agentClient, leadRepo, callRepo, interactionRepo, hub, log.Entry)
	processEmailUC := usecase.NewProcessEmailUseCase(agentClient, emailStore, hub)

	// 4. Worker (consumes the call-analysis queue)
	worker := queue.NewWorker(rabbitMQ.Ch, processCallUC, log.Entry)
	go worker.Start(queue.QueueName)

	// 5. Handlers
	callHandler := handlers.NewCallHandler(callRepo, producer, cfg.UploadDir, cfg.MaxFileSize, log.Entry)
	emailHandler := handlers.NewEmailHandler(processEmailUC, emailRepo, mailSender, log.Entry)
	leadHandler := handlers.NewLeadHandler(leadRepo, interactionRepo, hub, log.Entry)
	followUpHandler := handlers.NewFollowUpHandler(followUpRepo, log.Entry)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.AgentURL)
	eventsHandler := handlers.NewEventsHandler(hub, log.Entry)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(corsMiddleware(cfg.CORSOrigin))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/calls", func(r chi.Router) {
			r.Post("/", callHandler.Upload)
			r.Get("/{id}", callHandler.Get)
		})
		r.Route("/emails", func(r chi.Router) {
			r.Post("/", emailHandler.Create)
			r.Get("/{id}", emailHandler.Get)
			r.Post("/{id}/send-response", emailHandler.SendResponse)
		})
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Get("/{id}", leadHandler.Get)
			r.Patch("/{id}", leadHandler.Update)
			r.Get("/{id}/interactions", leadHandler.ListInteractions)
		})
		r.Route("/followups", func(r chi.Router) {
			r.Post("/", followUpHandler.Create)
			r.Get("/", followUpHandler.List)
			r.Patch("/{id}", followUpHandler.Update)
		})
		r.Get("/events", eventsHandler.Stream)
	})

	r.NotFound(handlers.NotFound)

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("🔥 lead-insights API listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// corsMiddleware scopes cross-origin access to the single dashboard origin.
func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})
}
