package handlers

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"

	apperrors "coldmail/job-application-helper/internal/errors"
)

// renderMarkdown converts model output to HTML for display. Raw HTML in the
// source is dropped. On failure the caller still has the plain text.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		log.Printf("⚠️  Failed to render markdown: %v\n", err)
		return ""
	}
	return buf.String()
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorHandler writes every error returned by a route as {"error": {...}}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": errorBody{Code: "HTTP_ERROR", Message: e.Message, Status: e.Code},
		})
	}

	appErr := apperrors.As(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	return c.Status(appErr.Status).JSON(fiber.Map{
		"error": errorBody{Code: string(appErr.Code), Message: appErr.Message, Status: appErr.Status},
	})
}
