package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/services"
)

type SummaryHandler struct {
	generator services.GeneratorService
}

func NewSummaryHandler(generator services.GeneratorService) *SummaryHandler {
	return &SummaryHandler{generator: generator}
}

func (h *SummaryHandler) HandleSummary(c *fiber.Ctx) error {
	var req models.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}

	summary, err := h.generator.SummarizeJobDescription(c.UserContext(), req.JobDescription)
	if err != nil {
		return err
	}

	return c.JSON(models.SummaryResponse{
		Summary:     summary,
		SummaryHTML: renderMarkdown(summary),
	})
}
