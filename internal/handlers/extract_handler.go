package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/services"
)

type ExtractHandler struct {
	uploads   services.UploadReader
	extractor services.DocumentExtractor
}

func NewExtractHandler(uploads services.UploadReader, extractor services.DocumentExtractor) *ExtractHandler {
	return &ExtractHandler{
		uploads:   uploads,
		extractor: extractor,
	}
}

// HandleExtract returns the text of an uploaded resume. A document that cannot
// be read still answers 200 with extracted=false so the user can paste instead.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return apperrors.NewValidation("please upload a 'resume' file (PDF or DOCX)")
	}

	doc, err := h.uploads.Read(file)
	if err != nil {
		return err
	}

	return c.JSON(extractResponse(h.extractor, doc))
}

func extractResponse(extractor services.DocumentExtractor, doc *models.ExtractedDocument) models.ExtractResponse {
	resp := models.ExtractResponse{
		Filename: doc.Filename,
		Kind:     string(doc.Kind),
	}

	if err := services.ExtractUpload(extractor, doc); err != nil {
		log.Printf("⚠️  Could not extract %s (%s): %v\n", doc.Filename, doc.Kind, err)
		resp.Message = fmt.Sprintf("Could not read text from %s. Please paste your resume manually.", doc.Filename)
		return resp
	}

	resp.Extracted = true
	resp.Text = doc.Text
	if doc.Text == "" {
		resp.Message = "The document contains no text. Please paste your resume manually."
	}
	return resp
}
