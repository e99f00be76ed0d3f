package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rubrica-go-api/internal/config"
	"github.com/noah-isme/rubrica-go-api/internal/database"
	"github.com/noah-isme/rubrica-go-api/internal/handler"
	"github.com/noah-isme/rubrica-go-api/internal/middleware"
	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
	"github.com/noah-isme/rubrica-go-api/internal/router"
	"github.com/noah-isme/rubrica-go-api/internal/rubric"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
	"github.com/noah-isme/rubrica-go-api/internal/service"
	"github.com/noah-isme/rubrica-go-api/pkg/ai"
	cloud "github.com/noah-isme/rubrica-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Assignment{},
		&models.Submission{},
		&models.Evaluation{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	transcriber, err := buildTranscriber(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create transcriber: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	engine := rubric.NewEngine(taxonomy.Default())

	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	serviceCtx, stopServices := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopServices()

	activityService := service.NewActivityService(activityRepo, validate, logger)
	notificationService := service.NewNotificationService(redisClient, "rubrica", natsConn, validate, logger)
	notificationService.Start(serviceCtx)

	evaluationService := service.NewEvaluationService(
		engine,
		submissionRepo,
		evaluationRepo,
		assignmentRepo,
		notificationService,
		activityService,
		redisClient,
		cfg.EvaluationCacheTTL,
		validate,
		logger,
	)
	batchService := service.NewBatchService(submissionRepo, assignmentRepo, evaluationService, cfg.BatchConcurrency, logger)
	transcriptionService := service.NewTranscriptionService(submissionRepo, uploader, transcriber, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, logger)

	studentHandler := handler.NewStudentHandler(studentService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, validate, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, transcriptionService, validate, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, batchService, validate, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, 30*time.Second)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:      studentHandler,
		AssignmentHandler:   assignmentHandler,
		SubmissionHandler:   submissionHandler,
		EvaluationHandler:   evaluationHandler,
		NotificationHandler: notificationHandler,
		ActivityHandler:     activityHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(serviceCtx, app)
}

func buildTranscriber(cfg config.Config, logger zerolog.Logger) (ai.Transcriber, error) {
	switch cfg.AIProvider {
	case "openai":
		return ai.NewOpenAITranscriber(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.AIProvider)
	}
}

func waitForShutdown(shutdownCtx context.Context, app *fiber.App) {
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
