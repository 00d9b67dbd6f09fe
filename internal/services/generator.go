package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
)

type GeneratorService interface {
	SummarizeJobDescription(ctx context.Context, jobDescription string) (string, error)
	GenerateEmail(ctx context.Context, sess *models.Session, req models.GenerationRequest) (*models.GenerationResult, error)
}

type generatorService struct {
	completion    CompletionService
	promptBuilder *PromptBuilder
	now           func() time.Time
}

func NewGeneratorService(completion CompletionService) GeneratorService {
	return &generatorService{
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		now:           time.Now,
	}
}

// SummarizeJobDescription returns a bullet-point summary. The summary is display-only
// and never stored in any session.
func (g *generatorService) SummarizeJobDescription(ctx context.Context, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", apperrors.NewValidation("Please provide a Job Description to summarize.")
	}

	prompt, err := g.promptBuilder.BuildSummaryPrompt(jobDescription)
	if err != nil {
		return "", err
	}

	log.Printf("📝 Summarizing job description (%d chars)\n", len(jobDescription))

	summary, err := g.completion.Complete(ctx, prompt)
	if err != nil {
		log.Printf("❌ Summary failed: %v\n", err)
		return "", err
	}

	return strings.TrimSpace(summary), nil
}

// GenerateEmail produces the body and then the subject. Either failure aborts the
// whole request and the session history is left untouched.
func (g *generatorService) GenerateEmail(ctx context.Context, sess *models.Session, req models.GenerationRequest) (*models.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.NewInternal(fmt.Errorf("session is required"))
	}

	log.Printf("🔄 Generating email for session %s (tone=%s, format=%s)\n", sess.ID, req.Tone, req.EmailFormat)

	emailPrompt, err := g.promptBuilder.BuildEmailPrompt(req)
	if err != nil {
		return nil, err
	}

	body, err := g.completion.Complete(ctx, emailPrompt)
	if err != nil {
		log.Printf("❌ Email body generation failed for session %s: %v\n", sess.ID, err)
		return nil, err
	}

	subjectPrompt, err := g.promptBuilder.BuildSubjectPrompt(req.JobDescription)
	if err != nil {
		return nil, err
	}

	subject, err := g.completion.Complete(ctx, subjectPrompt)
	if err != nil {
		log.Printf("❌ Subject generation failed for session %s: %v\n", sess.ID, err)
		return nil, err
	}

	result := models.GenerationResult{
		ID:        uuid.New(),
		Subject:   strings.TrimSpace(subject),
		Body:      strings.TrimSpace(body),
		CreatedAt: g.now().UTC(),
	}
	sess.History.Append(result)

	log.Printf("✅ Email %s generated for session %s (history: %d)\n", result.ID, sess.ID, sess.History.Len())

	return &result, nil
}
