package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/middleware"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
	"github.com/noah-isme/rubrica-go-api/internal/service"
	"github.com/noah-isme/rubrica-go-api/internal/utils"
)

// EvaluationHandler wires rubric grading routes.
type EvaluationHandler struct {
	evaluations service.EvaluationService
	batch       service.BatchService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(evaluations service.EvaluationService, batch service.BatchService, validator *validator.Validate, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluations: evaluations,
		batch:       batch,
		validator:   validator,
		logger:      logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches grading endpoints under the API root. Preview grades
// text without storing it; the submission and assignment routes operate
// on stored records. Scoring and reporting are restricted to teachers,
// and batch runs are rate limited because each one grades a whole class.
func (h *EvaluationHandler) Register(router fiber.Router) {
	teacherOnly := middleware.AuthOptions{Role: middleware.AuthRoleTeacher}

	router.Post("/evaluations/preview", middleware.WithAuth(h.preview, teacherOnly))
	router.Post("/submissions/:id/evaluate", middleware.WithAuth(h.evaluateSubmission, teacherOnly))
	router.Get("/submissions/:id/evaluation", h.getEvaluation)
	router.Post("/assignments/:id/evaluate",
		middleware.RateLimit("batch-evaluate", 5, time.Minute),
		middleware.WithAuth(h.evaluateAssignment, teacherOnly))
	router.Get("/assignments/:id/report", middleware.WithAuth(h.report, teacherOnly))
}

func (h *EvaluationHandler) preview(c *fiber.Ctx) error {
	var payload dto.EvaluateTextRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.evaluations.EvaluateText(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "text evaluated", result)
}

func (h *EvaluationHandler) evaluateSubmission(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluation, err := h.evaluations.EvaluateSubmission(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission evaluated", evaluation)
}

func (h *EvaluationHandler) getEvaluation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluation, err := h.evaluations.GetBySubmission(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation retrieved", evaluation)
}

func (h *EvaluationHandler) evaluateAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.batch.EvaluateAssignment(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment evaluated", result)
}

func (h *EvaluationHandler) report(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.evaluations.Report(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report generated", report)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrEvaluationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "evaluation not found")
	case errors.Is(err, service.ErrSubmissionNotReady):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, taxonomy.ErrVariantNotRegistered):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
