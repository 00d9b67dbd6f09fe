package services

import (
	"strconv"

	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/prompts"
)

// PromptBuilder renders the three fixed templates used by the generator.
type PromptBuilder struct {
	summary prompts.Template
	email   prompts.Template
	subject prompts.Template
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		summary: prompts.MustGet(prompts.Summary),
		email:   prompts.MustGet(prompts.Email),
		subject: prompts.MustGet(prompts.Subject),
	}
}

// BuildSummaryPrompt creates the bullet-point job description summary prompt
func (pb *PromptBuilder) BuildSummaryPrompt(jobDescription string) (string, error) {
	return prompts.Render(pb.summary, map[string]string{
		"job_description": jobDescription,
	})
}

// BuildEmailPrompt creates the cold email body prompt
func (pb *PromptBuilder) BuildEmailPrompt(req models.GenerationRequest) (string, error) {
	return prompts.Render(pb.email, map[string]string{
		"tone":            string(req.Tone),
		"email_format":    string(req.EmailFormat),
		"creativity":      strconv.Itoa(req.Creativity),
		"personalization": strconv.Itoa(req.Personalization),
		"job_description": req.JobDescription,
		"portfolio":       req.PortfolioText,
	})
}

// BuildSubjectPrompt creates the subject line prompt
func (pb *PromptBuilder) BuildSubjectPrompt(jobDescription string) (string, error) {
	return prompts.Render(pb.subject, map[string]string{
		"job_description": jobDescription,
	})
}
