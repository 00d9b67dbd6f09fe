package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coldmail/job-application-helper/internal/errors"
)

func validRequest() GenerationRequest {
	return GenerationRequest{
		JobDescription:  "Backend Engineer at Acme",
		PortfolioText:   "Five years of Go",
		Tone:            ToneProfessional,
		EmailFormat:     FormatFormalLetter,
		Creativity:      50,
		Personalization: 70,
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *GenerationRequest)
		wantErr string
	}{
		{"valid", func(r *GenerationRequest) {}, ""},
		{"empty job description", func(r *GenerationRequest) { r.JobDescription = "" }, MissingInputMessage},
		{"whitespace portfolio", func(r *GenerationRequest) { r.PortfolioText = " \n\t " }, MissingInputMessage},
		{"creativity above range", func(r *GenerationRequest) { r.Creativity = 101 }, "invalid Creativity"},
		{"personalization below range", func(r *GenerationRequest) { r.Personalization = -1 }, "invalid Personalization"},
		{"unknown tone", func(r *GenerationRequest) { r.Tone = "Angry" }, "invalid Tone"},
		{"unknown format", func(r *GenerationRequest) { r.EmailFormat = "Memo" }, "invalid EmailFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTone(t *testing.T) {
	tone, err := ParseTone("persuasive")
	require.NoError(t, err)
	assert.Equal(t, TonePersuasive, tone)

	tone, err = ParseTone("")
	require.NoError(t, err)
	assert.Equal(t, ToneProfessional, tone)

	_, err = ParseTone("sarcastic")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestParseEmailFormat(t *testing.T) {
	for _, in := range []string{"Short Note", "short_note", "ShortNote", "short-note"} {
		f, err := ParseEmailFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, FormatShortNote, f, in)
	}

	f, err := ParseEmailFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatFormalLetter, f)

	_, err = ParseEmailFormat("haiku")
	assert.Error(t, err)
}

func TestGenerateRequest_Defaults(t *testing.T) {
	req, err := GenerateRequest{JobDescription: "JD", Portfolio: "CV"}.ToGenerationRequest()
	require.NoError(t, err)

	assert.Equal(t, ToneProfessional, req.Tone)
	assert.Equal(t, FormatFormalLetter, req.EmailFormat)
	assert.Equal(t, DefaultCreativity, req.Creativity)
	assert.Equal(t, DefaultPersonalization, req.Personalization)
}

func TestGenerateRequest_ExplicitZeroKept(t *testing.T) {
	zero := 0
	req, err := GenerateRequest{JobDescription: "JD", Portfolio: "CV", Creativity: &zero}.ToGenerationRequest()
	require.NoError(t, err)

	assert.Equal(t, 0, req.Creativity)
}

func TestGenerationResult_Artifact(t *testing.T) {
	r := GenerationResult{Subject: "Great fit!", Body: "Dear team,"}
	assert.Equal(t, "Subject: Great fit!\n\nDear team,", r.Artifact())
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		mime, filename string
		want           DocumentKind
	}{
		{MIMEPDF, "cv.pdf", KindPaginated},
		{"application/pdf; charset=binary", "cv", KindPaginated},
		{MIMEDOCX, "cv.docx", KindFlat},
		{MIMEOctetStream, "cv.PDF", KindPaginated},
		{"", "cv.docx", KindFlat},
		{"text/plain", "cv.pdf", KindUnsupported},
		{"image/png", "cv.png", KindUnsupported},
		{"", "cv.doc", KindUnsupported},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectKind(tt.mime, tt.filename), "%s %s", tt.mime, tt.filename)
	}
}

func TestHistory_OrderAndCopy(t *testing.T) {
	h := NewHistory()
	for _, s := range []string{"one", "two", "three"} {
		h.Append(GenerationResult{ID: uuid.New(), Subject: s})
	}

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].Subject)
	assert.Equal(t, "three", entries[2].Subject)

	entries[0].Subject = "mutated"
	assert.Equal(t, "one", h.Entries()[0].Subject)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "three", latest.Subject)

	found, ok := h.Find(entries[1].ID)
	require.True(t, ok)
	assert.Equal(t, "two", found.Subject)

	_, ok = h.Find(uuid.New())
	assert.False(t, ok)
}

func TestHistory_LatestEmpty(t *testing.T) {
	_, ok := NewHistory().Latest()
	assert.False(t, ok)
}
