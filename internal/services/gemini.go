package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/semaphore"
	"google.golang.org/genai"

	apperrors "coldmail/job-application-helper/internal/errors"
)

// CompletionService sends one prompt to the text-generation model and waits
// for the full response. There is no retry, caching or streaming.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

type GeminiOptions struct {
	APIKey string
	Model  string
	// MaxConcurrent caps in-flight calls across all sessions. Zero means 1.
	MaxConcurrent int64
	// BaseURL overrides the Gemini endpoint; empty uses the SDK default.
	BaseURL string
}

type geminiService struct {
	client    *genai.Client
	modelName string
	config    *genai.GenerateContentConfig
	slots     *semaphore.Weighted
}

// NewGeminiService configures the model and credential once for the process lifetime.
func NewGeminiService(ctx context.Context, opts GeminiOptions) (CompletionService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, apperrors.NewAuth(errors.New("API key is required"))
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: opts.Model,
		config: &genai.GenerateContentConfig{
			MaxOutputTokens: 4096,
		},
		slots: semaphore.NewWeighted(opts.MaxConcurrent),
	}, nil
}

// Model implements CompletionService.
func (g *geminiService) Model() string {
	return g.modelName
}

// Complete implements CompletionService.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.slots.Acquire(ctx, 1); err != nil {
		return "", apperrors.NewService(fmt.Errorf("failed to acquire completion slot: %w", err))
	}
	defer g.slots.Release(1)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", classifyCompletionError(err)
	}

	if resp == nil {
		return "", apperrors.NewService(errors.New("no response generated (nil response)"))
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewService(errors.New("no text content in response"))
	}

	return text, nil
}

// classifyCompletionError separates credential rejections from every other failure.
func classifyCompletionError(err error) error {
	code, status, message := 0, "", ""

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status, message = apiErr.Code, apiErr.Status, apiErr.Message
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code, status, message = apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message
	}

	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return apperrors.NewAuth(err)
	case strings.EqualFold(status, "UNAUTHENTICATED"), strings.EqualFold(status, "PERMISSION_DENIED"):
		return apperrors.NewAuth(err)
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "api key"):
		// An invalid key is reported as INVALID_ARGUMENT by the Gemini API.
		return apperrors.NewAuth(err)
	default:
		return apperrors.NewService(err)
	}
}
