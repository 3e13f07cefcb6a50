package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/models"
	"alfredoptarigan/ai-mentorship/internal/services"
)

type AssessmentHandler struct {
	assessment services.AssessmentService
	logger     *zap.Logger
}

func NewAssessmentHandler(assessment services.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessment: assessment,
		logger:     logger,
	}
}

// HandleAssessment handles POST /assessment
func (h *AssessmentHandler) HandleAssessment(c *fiber.Ctx) error {
	var req models.AssessmentRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.UserProfile.LifeStage) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "userProfile.lifeStage is required",
		})
	}

	if req.CurrentQuestionIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "currentQuestionIndex must not be negative",
		})
	}

	// First call returns the opening set, later calls one follow-up
	if req.CurrentQuestionIndex == 0 {
		questions, err := h.assessment.GenerateQuestions(c.UserContext(), req.UserProfile)
		if err != nil {
			return h.fail(c, "Failed to generate questions", err)
		}

		return c.JSON(models.QuestionsResponse{Questions: questions})
	}

	question, err := h.assessment.NextQuestion(c.UserContext(), req.UserProfile, req.Responses, req.CurrentQuestionIndex)
	if err != nil {
		return h.fail(c, "Failed to generate questions", err)
	}

	return c.JSON(models.QuestionResponse{Question: question})
}

// HandleAnalyze handles POST /assessment/analyze
func (h *AssessmentHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	analysis, err := h.assessment.Analyze(c.UserContext(), req.UserProfile, req.Responses)
	if err != nil {
		return h.fail(c, "Failed to analyze assessment", err)
	}

	return c.JSON(analysis)
}

func (h *AssessmentHandler) fail(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, services.ErrNotConfigured) {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: services.ErrNotConfigured.Error(),
		})
	}

	h.logger.Error(message,
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Error(err),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
}
