package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	apperrors "coldmail/job-application-helper/internal/errors"
)

type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	TonePersuasive   Tone = "Persuasive"
	ToneConcise      Tone = "Concise"
)

// Tones lists the selectable tones; the first one is the default.
var Tones = []Tone{ToneProfessional, ToneFriendly, TonePersuasive, ToneConcise}

func (t Tone) Valid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTone matches s case-insensitively. An empty string selects the default tone.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tones[0], nil
	}
	for _, v := range Tones {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", apperrors.NewValidation(fmt.Sprintf("unknown tone %q", s))
}

type EmailFormat string

const (
	FormatFormalLetter EmailFormat = "Formal Letter"
	FormatShortNote    EmailFormat = "Short Note"
)

// EmailFormats lists the selectable formats; the first one is the default.
var EmailFormats = []EmailFormat{FormatFormalLetter, FormatShortNote}

func (f EmailFormat) Valid() bool {
	for _, v := range EmailFormats {
		if f == v {
			return true
		}
	}
	return false
}

// ParseEmailFormat accepts "Formal Letter", "formal_letter", "FormalLetter" and similar spellings.
// An empty string selects the default format.
func ParseEmailFormat(s string) (EmailFormat, error) {
	key := normalizeFormat(s)
	if key == "" {
		return EmailFormats[0], nil
	}
	for _, v := range EmailFormats {
		if key == normalizeFormat(string(v)) {
			return v, nil
		}
	}
	return "", apperrors.NewValidation(fmt.Sprintf("unknown email format %q", s))
}

func normalizeFormat(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

const (
	DefaultCreativity      = 50
	DefaultPersonalization = 70
)

// MissingInputMessage is shown when either required text field is blank.
const MissingInputMessage = "Please provide both Job Description and Portfolio."

// GenerationRequest is one submit action. It is passed by value and never mutated.
type GenerationRequest struct {
	JobDescription  string      `validate:"notblank"`
	PortfolioText   string      `validate:"notblank"`
	Tone            Tone        `validate:"tone"`
	EmailFormat     EmailFormat `validate:"email_format"`
	Creativity      int         `validate:"min=0,max=100"`
	Personalization int         `validate:"min=0,max=100"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "tone", func(fl validator.FieldLevel) bool {
		return Tone(fl.Field().String()).Valid()
	})
	mustRegister(v, "email_format", func(fl validator.FieldLevel) bool {
		return EmailFormat(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// Validate rejects the request locally before any completion call is made.
func (r GenerationRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidation(err.Error())
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "notblank" {
			return apperrors.NewValidation(MissingInputMessage)
		}
	}

	fe := fieldErrs[0]
	return apperrors.NewValidation(fmt.Sprintf("invalid %s: %v", fe.Field(), fe.Value()))
}

// GenerationResult is one generated email. Ownership moves to the session history on success.
type GenerationResult struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ArtifactFilename = "cold_email.txt"
	ArtifactMIME     = "text/plain"
)

// Artifact is the downloadable plain-text rendering of the result.
func (r GenerationResult) Artifact() string {
	return "Subject: " + r.Subject + "\n\n" + r.Body
}
