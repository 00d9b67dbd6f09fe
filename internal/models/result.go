package models

import (
	"time"
)

type ExtractResponse struct {
	Filename  string `json:"filename"`
	Kind      string `json:"kind"`
	Extracted bool   `json:"extracted"`
	Text      string `json:"text"`
	Message   string `json:"message"`
}

type SummaryRequest struct {
	JobDescription string `json:"job_description" form:"job_description"`
}

type SummaryResponse struct {
	Summary     string `json:"summary"`
	SummaryHTML string `json:"summary_html"`
}

// GenerateRequest is the wire form of a submit-generate action. Creativity and
// Personalization are pointers so an omitted value can fall back to its default.
type GenerateRequest struct {
	JobDescription  string `json:"job_description" form:"job_description"`
	Portfolio       string `json:"portfolio" form:"portfolio"`
	Tone            string `json:"tone" form:"tone"`
	EmailFormat     string `json:"email_format" form:"email_format"`
	Creativity      *int   `json:"creativity" form:"creativity"`
	Personalization *int   `json:"personalization" form:"personalization"`
}

// ToGenerationRequest applies defaults and parses the selector values.
func (r GenerateRequest) ToGenerationRequest() (GenerationRequest, error) {
	tone, err := ParseTone(r.Tone)
	if err != nil {
		return GenerationRequest{}, err
	}

	format, err := ParseEmailFormat(r.EmailFormat)
	if err != nil {
		return GenerationRequest{}, err
	}

	creativity := DefaultCreativity
	if r.Creativity != nil {
		creativity = *r.Creativity
	}

	personalization := DefaultPersonalization
	if r.Personalization != nil {
		personalization = *r.Personalization
	}

	return GenerationRequest{
		JobDescription:  r.JobDescription,
		PortfolioText:   r.Portfolio,
		Tone:            tone,
		EmailFormat:     format,
		Creativity:      creativity,
		Personalization: personalization,
	}, nil
}

type GenerateResponse struct {
	ID            string `json:"id"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	BodyHTML      string `json:"body_html"`
	Artifact      string `json:"artifact"`
	DownloadURL   string `json:"download_url"`
	HistoryLength int    `json:"history_length"`
}

type HistoryItem struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	Items     []HistoryItem `json:"items"`
}

type OptionsResponse struct {
	Tones                  []Tone        `json:"tones"`
	EmailFormats           []EmailFormat `json:"email_formats"`
	DefaultCreativity      int           `json:"default_creativity"`
	DefaultPersonalization int           `json:"default_personalization"`
	AcceptedUploads        []string      `json:"accepted_uploads"`
}
