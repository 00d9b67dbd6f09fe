package services

import (
	"fmt"
	"io"
	"mime/multipart"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
)

// UploadReader turns a multipart upload into an in-memory document.
// Nothing is written to disk; the bytes are dropped once the request ends.
type UploadReader interface {
	Read(file *multipart.FileHeader) (*models.ExtractedDocument, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

func (u *uploadReader) Read(file *multipart.FileHeader) (*models.ExtractedDocument, error) {
	if file.Size > u.maxFileSize {
		return nil, apperrors.NewValidation(fmt.Sprintf("file too large. Max size: %d bytes", u.maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, apperrors.NewValidation(fmt.Sprintf("file too large. Max size: %d bytes", u.maxFileSize))
	}

	declared := file.Header.Get("Content-Type")

	return &models.ExtractedDocument{
		Filename:     file.Filename,
		DeclaredMIME: declared,
		Kind:         models.DetectKind(declared, file.Filename),
		RawBytes:     data,
	}, nil
}

// ExtractUpload fills doc.Text. Any failure, including an unsupported kind,
// leaves the text empty so the caller can fall back to manual entry; the
// error is returned only for logging.
func ExtractUpload(extractor DocumentExtractor, doc *models.ExtractedDocument) error {
	text, err := extractor.Extract(doc.RawBytes, doc.Kind)
	if err != nil {
		doc.Text = ""
		return err
	}
	doc.Text = text
	return nil
}
