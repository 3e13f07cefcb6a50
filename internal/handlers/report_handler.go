package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-mentorship/internal/models"
	"alfredoptarigan/ai-mentorship/internal/services"
)

type ReportHandler struct {
	now func() time.Time
}

func NewReportHandler(now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{now: now}
}

// HandleReport handles POST /assessment/report
func (h *ReportHandler) HandleReport(c *fiber.Ctx) error {
	var result models.AnalysisResult

	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	if result.PersonalityProfile.Type == "" && len(result.CareerRecommendations) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "analysis result is required",
		})
	}

	date := h.now()
	html, err := services.FormatReport(&result, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Attachment(services.ReportFilename(date))
	return c.SendString(html)
}
