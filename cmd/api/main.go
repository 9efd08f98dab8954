package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/obaturn/Property-Managment-Backend/internal/infra/database"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/http/handlers"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/http/middleware"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/integration/gcal"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/integration/kommo"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/integration/smsapi"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/mail"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/notify"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/queue"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/realtime"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/worker"
	"github.com/obaturn/Property-Managment-Backend/internal/scheduling"
	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	agentRepo := database.NewAgentRepository(db)
	meetingRepo := database.NewMeetingRepository(db)
	propertyRepo := database.NewPropertyRepository(db)
	unit := database.NewUnitOfWork(db)

	// 2. Gateways and adapters
	calendar := gcal.NewClient(os.Getenv("CALENDAR_API_URL"), os.Getenv("CALENDAR_API_TOKEN"))
	sms := smsapi.NewClient()
	crm := kommo.NewClient()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	hub := realtime.NewHub()
	go hub.Run()

	fanout := notify.NewFanOut(mailSender, sms, hub, producer)

	// 3. Workers
	crmWorker := queue.NewWorker(rabbitMQ.Ch, crm)
	go crmWorker.Start(queue.QueueName)

	reminderWorker := worker.NewMeetingReminderWorker(meetingRepo, mailSender)
	go reminderWorker.Start(context.Background())

	// 4. Scheduling core
	generator := scheduling.NewGenerator()
	oracle := scheduling.NewOracle(calendar, generator)
	selector := scheduling.NewSelector(oracle)

	// 5. UseCases
	bookViewingUC := usecase.NewBookViewingUseCase(propertyRepo, unit, selector, calendar, fanout)
	ingestLeadUC := usecase.NewIngestLeadUseCase(leadRepo, fanout)
	listAvailabilityUC := usecase.NewListAvailabilityUseCase(propertyRepo, agentRepo, oracle)
	scheduleMeetingUC := usecase.NewScheduleMeetingUseCase(meetingRepo, fanout)
	updateLeadStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo)
	updateMeetingStatusUC := usecase.NewUpdateMeetingStatusUseCase(meetingRepo, agentRepo)

	// 6. Handlers
	bookingHandler := handlers.NewBookingHandler(bookViewingUC)
	availabilityHandler := handlers.NewAvailabilityHandler(listAvailabilityUC)
	webhookHandler := handlers.NewWebhookHandler(ingestLeadUC)
	leadHandler := handlers.NewLeadHandler(leadRepo, updateLeadStatusUC)
	agentHandler := handlers.NewAgentHandler(agentRepo, calendar)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo)
	meetingHandler := handlers.NewMeetingHandler(meetingRepo, scheduleMeetingUC, updateMeetingStatusUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/bookings", bookingHandler.Handle)
	r.Get("/availability", availabilityHandler.Handle)
	r.Post("/webhook/leads", webhookHandler.Handle)

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.HandleCreate)
		r.Get("/", leadHandler.HandleList)
		r.Get("/{id}", leadHandler.HandleGet)
		r.Patch("/{id}/status", leadHandler.HandleUpdateStatus)
	})

	r.Route("/agents", func(r chi.Router) {
		r.Post("/", agentHandler.HandleCreate)
		r.Get("/", agentHandler.HandleList)
		r.Patch("/{id}", agentHandler.HandleUpdate)
		r.Get("/{id}/upcoming", agentHandler.HandleUpcoming)
	})

	r.Route("/properties", func(r chi.Router) {
		r.Post("/", propertyHandler.HandleCreate)
		r.Get("/", propertyHandler.HandleList)
		r.Get("/{id}", propertyHandler.HandleGet)
		r.Patch("/{id}", propertyHandler.HandleUpdate)
	})

	r.Route("/meetings", func(r chi.Router) {
		r.Post("/", meetingHandler.HandleCreate)
		r.Get("/", meetingHandler.HandleList)
		r.Patch("/{id}/status", meetingHandler.HandleUpdateStatus)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", hub.ServeWS)

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Viewings API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
