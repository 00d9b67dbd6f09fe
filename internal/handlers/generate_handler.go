package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/repositories"
	"coldmail/job-application-helper/internal/services"
)

type GenerateHandler struct {
	generator services.GeneratorService
	sessions  repositories.SessionRepository
	uploads   services.UploadReader
	extractor services.DocumentExtractor
}

func NewGenerateHandler(
	generator services.GeneratorService,
	sessions repositories.SessionRepository,
	uploads services.UploadReader,
	extractor services.DocumentExtractor,
) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		sessions:  sessions,
		uploads:   uploads,
		extractor: extractor,
	}
}

// HandleGenerate accepts JSON or a multipart form. In the multipart form an
// optional "resume" file replaces the portfolio text when extraction yields text.
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var body models.GenerateRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidation("invalid request body")
	}

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := h.applyResume(c, &body); err != nil {
			return err
		}
	}

	req, err := body.ToGenerationRequest()
	if err != nil {
		return err
	}

	result, err := h.generator.GenerateEmail(c.UserContext(), sess, req)
	if err != nil {
		return err
	}

	if err := h.sessions.Save(c.UserContext(), sess); err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to save session: %w", err))
	}

	return c.Status(fiber.StatusCreated).JSON(models.GenerateResponse{
		ID:            result.ID.String(),
		Subject:       result.Subject,
		Body:          result.Body,
		BodyHTML:      renderMarkdown(result.Body),
		Artifact:      result.Artifact(),
		DownloadURL:   "/api/v1/history/" + result.ID.String() + "/download",
		HistoryLength: sess.History.Len(),
	})
}

func (h *GenerateHandler) applyResume(c *fiber.Ctx, body *models.GenerateRequest) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return nil
	}

	doc, err := h.uploads.Read(file)
	if err != nil {
		return err
	}

	if err := services.ExtractUpload(h.extractor, doc); err != nil {
		log.Printf("⚠️  Could not extract %s, keeping pasted portfolio: %v\n", doc.Filename, err)
		return nil
	}
	if doc.Text != "" {
		body.Portfolio = doc.Text
	}
	return nil
}
