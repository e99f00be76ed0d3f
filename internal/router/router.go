package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/rubrica-go-api/internal/config"
	"github.com/noah-isme/rubrica-go-api/internal/handler"
	"github.com/noah-isme/rubrica-go-api/internal/middleware"
	"github.com/noah-isme/rubrica-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler      *handler.StudentHandler
	AssignmentHandler   *handler.AssignmentHandler
	SubmissionHandler   *handler.SubmissionHandler
	EvaluationHandler   *handler.EvaluationHandler
	NotificationHandler *handler.NotificationHandler
	ActivityHandler     *handler.ActivityHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	grading := app.Group("/api/v1/grading", jwtMiddleware)

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(grading.Group("/students"))
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(grading.Group("/assignments"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(grading.Group("/submissions"))
	}

	// Evaluation routes span assignments and submissions, so the handler
	// registers full paths under the grading root itself.
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(grading)
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(grading.Group("/notifications"))
	}

	// Audit trail is for graders, not students.
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(grading.Group("/activity", middleware.RequireRole("teacher", "admin")))
	}
}
