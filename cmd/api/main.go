package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/rafaelcosta1/atende-crm/internal/infra/cache"
	"github.com/rafaelcosta1/atende-crm/internal/infra/database"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/handlers"
	"github.com/rafaelcosta1/atende-crm/internal/infra/http/middleware"
	"github.com/rafaelcosta1/atende-crm/internal/infra/integration/automation"
	"github.com/rafaelcosta1/atende-crm/internal/infra/integration/zapi"
	"github.com/rafaelcosta1/atende-crm/internal/infra/mail"
	"github.com/rafaelcosta1/atende-crm/internal/infra/queue"
	"github.com/rafaelcosta1/atende-crm/internal/infra/storage"
	"github.com/rafaelcosta1/atende-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Redis é opcional: sem ele o serviço funciona, só perde o cache
	var cacheClient *cache.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cacheClient, err = cache.NewClient(redisURL)
		if err != nil {
			log.Printf("⚠️ Redis indisponível, seguindo sem cache: %v", err)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	// RabbitMQ carrega os webhooks de automação
	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível, webhooks desabilitados: %v", err)
		rabbitMQ = nil
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
	}

	// 1. Repositórios
	orgRepo := database.NewOrganizationRepository(db)
	leadRepo := database.NewLeadRepository(db)
	apptRepo := database.NewAppointmentRepository(db)
	clientRepo := database.NewClientRepository(db)
	propertyRepo := database.NewPropertyRepository(db)
	userRepo := database.NewUserRepository(db)
	messageRepo := database.NewMessageRepository(db)

	// 2. Gateways e Adapters
	zapiClient := zapi.NewClient(
		os.Getenv("ZAPI_WEBHOOK_URL"),
		os.Getenv("ZAPI_INSTANCE_ID"),
		os.Getenv("ZAPI_TOKEN"),
	)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	var uploader *storage.Uploader
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		uploader, err = storage.NewUploader(storage.Config{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:          os.Getenv("AWS_REGION"),
			Bucket:          bucket,
			PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		})
		if err != nil {
			log.Printf("⚠️ Storage indisponível, upload de imagens desabilitado: %v", err)
			uploader = nil
		}
	}

	// 3. Worker (consome a fila e entrega os webhooks no n8n)
	var producer usecase.QueueProducerInterface
	if rabbitMQ != nil {
		automationClient := automation.NewClient(os.Getenv("AUTOMATION_WEBHOOK_URL"))
		worker := queue.NewWorker(rabbitMQ.Ch, automationClient)
		go worker.Start(queue.QueueName)

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	var cachePort usecase.CachePort
	if cacheClient != nil {
		cachePort = cacheClient
	}

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, producer, cachePort)
	changeStatusUC := usecase.NewChangeLeadStatusUseCase(leadRepo, cachePort)
	createApptUC := usecase.NewCreateAppointmentUseCase(apptRepo, leadRepo, clientRepo, mailSender)
	sendMessageUC := usecase.NewSendMessageUseCase(messageRepo, zapiClient)
	dashboardUC := usecase.NewDashboardUseCase(leadRepo, apptRepo, cachePort)

	// 5. Handlers
	orgHandler := handlers.NewOrganizationHandler(orgRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo, userRepo, createLeadUC, changeStatusUC, cachePort)
	apptHandler := handlers.NewAppointmentHandler(apptRepo, createApptUC)
	clientHandler := handlers.NewClientHandler(clientRepo)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo, uploader)
	teamHandler := handlers.NewTeamHandler(userRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, sendMessageUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)

	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cacheClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Organization-ID", "X-User-ID"},
	}))

	// Rotas públicas
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/capture/{orgID}", leadHandler.CaptureLead)
	r.Post("/organizations", orgHandler.Create)

	// Rotas do tenant (exigem X-Organization-ID)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Tenant)

		r.Post("/leads", leadHandler.Create)
		r.Get("/leads", leadHandler.List)
		r.Get("/leads/{id}", leadHandler.Get)
		r.Post("/leads/{id}/status", leadHandler.ChangeStatus)
		r.Delete("/leads/{id}", leadHandler.Delete)

		r.Post("/leads/{id}/messages", messageHandler.Send)
		r.Get("/leads/{id}/messages", messageHandler.List)

		r.Post("/appointments", apptHandler.Create)
		r.Get("/appointments", apptHandler.List)
		r.Put("/appointments/{id}/status", apptHandler.UpdateStatus)

		r.Post("/clients", clientHandler.Create)
		r.Get("/clients", clientHandler.List)
		r.Get("/clients/{id}", clientHandler.Get)
		r.Put("/clients/{id}", clientHandler.Update)
		r.Delete("/clients/{id}", clientHandler.Delete)

		r.Post("/properties", propertyHandler.Create)
		r.Get("/properties", propertyHandler.List)
		r.Get("/properties/{id}", propertyHandler.Get)
		r.Put("/properties/{id}", propertyHandler.Update)
		r.Post("/properties/{id}/images", propertyHandler.UploadImage)
		r.Delete("/properties/{id}", propertyHandler.Delete)

		r.Post("/team", teamHandler.Create)
		r.Get("/team", teamHandler.List)
		r.Put("/team/{id}", teamHandler.Update)
		r.Delete("/team/{id}", teamHandler.Delete)

		r.Get("/organization", orgHandler.Get)
		r.Put("/organization", orgHandler.Update)

		r.Get("/dashboard", dashboardHandler.Get)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 AtendeCRM rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
