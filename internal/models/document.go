package models

import (
	"path/filepath"
	"strings"
)

// DocumentKind is the closed set of upload containers the extractor understands.
type DocumentKind string

const (
	KindPaginated   DocumentKind = "paginated" // page-oriented container (PDF)
	KindFlat        DocumentKind = "flat"      // paragraph-oriented container (DOCX)
	KindUnsupported DocumentKind = "unsupported"
)

const (
	MIMEPDF         = "application/pdf"
	MIMEDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEOctetStream = "application/octet-stream"
)

// KindFromMIME maps a declared MIME type to a document kind.
func KindFromMIME(mime string) DocumentKind {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	switch strings.ToLower(strings.TrimSpace(mime)) {
	case MIMEPDF:
		return KindPaginated
	case MIMEDOCX:
		return KindFlat
	default:
		return KindUnsupported
	}
}

// DetectKind uses the declared MIME type and falls back to the file extension
// only when the MIME type is missing or generic.
func DetectKind(mime, filename string) DocumentKind {
	if kind := KindFromMIME(mime); kind != KindUnsupported {
		return kind
	}

	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	if base != "" && base != MIMEOctetStream {
		return KindUnsupported
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPaginated
	case ".docx":
		return KindFlat
	default:
		return KindUnsupported
	}
}

// ExtractedDocument is one uploaded file and the text pulled out of it.
// It lives only for the duration of the upload request.
type ExtractedDocument struct {
	Filename     string       `json:"filename"`
	DeclaredMIME string       `json:"declared_mime"`
	Kind         DocumentKind `json:"kind"`
	RawBytes     []byte       `json:"-"`
	Text         string       `json:"text"`
}
