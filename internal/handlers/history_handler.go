package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
)

type HistoryHandler struct{}

func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

// HandleList returns the session's results, oldest first.
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	entries := sess.History.Entries()
	items := make([]models.HistoryItem, 0, len(entries))
	for i, e := range entries {
		items = append(items, models.HistoryItem{
			Index:     i + 1,
			ID:        e.ID.String(),
			Subject:   e.Subject,
			Body:      e.Body,
			CreatedAt: e.CreatedAt,
		})
	}

	return c.JSON(models.HistoryResponse{
		SessionID: sess.ID,
		Items:     items,
	})
}

// HandleDownload serves one result as cold_email.txt. The id "latest" selects
// the most recent result.
func (h *HistoryHandler) HandleDownload(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	idParam := c.Params("id")

	var (
		result models.GenerationResult
		found  bool
	)
	if idParam == "latest" {
		result, found = sess.History.Latest()
	} else {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return apperrors.NewValidation("Invalid result ID format")
		}
		result, found = sess.History.Find(id)
	}
	if !found {
		return apperrors.NewNotFound("result", idParam)
	}

	c.Set(fiber.HeaderContentType, models.ArtifactMIME+"; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+models.ArtifactFilename+`"`)
	return c.SendString(result.Artifact())
}
