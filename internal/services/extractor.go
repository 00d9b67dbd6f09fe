package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
)

type DocumentExtractor interface {
	Extract(data []byte, kind models.DocumentKind) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

// Extract returns the plain text of data. Kinds other than paginated and flat
// fail with an unsupported format error; unreadable containers fail with an
// extraction error.
func (e *documentExtractor) Extract(data []byte, kind models.DocumentKind) (string, error) {
	switch kind {
	case models.KindPaginated:
		return extractPaginated(data)
	case models.KindFlat:
		return extractFlat(data)
	default:
		return "", apperrors.NewUnsupportedFormat(string(kind))
	}
}

// pageSource is a 1-indexed sequence of pages.
type pageSource interface {
	NumPage() int
	PageText(index int) (string, error)
}

type pdfPages struct {
	r *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.r.NumPage()
}

func (p pdfPages) PageText(index int) (string, error) {
	page := p.r.Page(index)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	// Every text object starts with a line break; drop the one opening the page.
	return strings.TrimPrefix(text, "\n"), nil
}

// joinPages concatenates page text in document order. Empty pages add nothing
// and no separator is inserted between pages.
func joinPages(src pageSource) (string, error) {
	var textBuilder strings.Builder

	for pageIndex := 1; pageIndex <= src.NumPage(); pageIndex++ {
		text, err := src.PageText(pageIndex)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

func extractPaginated(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperrors.NewExtractionFailed(string(models.KindPaginated), fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtractionFailed(string(models.KindPaginated), fmt.Errorf("failed to open PDF: %w", err))
	}

	text, err = joinPages(pdfPages{r: r})
	if err != nil {
		return "", apperrors.NewExtractionFailed(string(models.KindPaginated), err)
	}

	return text, nil
}

func extractFlat(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtractionFailed(string(models.KindFlat), fmt.Errorf("failed to open DOCX: %w", err))
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", apperrors.NewExtractionFailed(string(models.KindFlat), err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs walks WordprocessingML and returns the text of each top-level
// body paragraph in order. Runs contribute their w:t text, w:tab becomes a tab
// and w:br/w:cr a newline. Text boxes anchored inside a paragraph are skipped.
func bodyParagraphs(content string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		stack      []string
		current    *strings.Builder
		inText     bool
		skipDepth  int
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "p":
				if parent() == "body" {
					current = &strings.Builder{}
				}
			case "txbxContent":
				skipDepth++
			case "t":
				inText = parent() == "r"
			case "tab":
				if current != nil && skipDepth == 0 && parent() == "r" {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if current != nil && skipDepth == 0 && parent() == "r" {
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch t.Name.Local {
			case "p":
				if current != nil && parent() == "body" {
					paragraphs = append(paragraphs, current.String())
					current = nil
				}
			case "txbxContent":
				skipDepth--
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText && current != nil && skipDepth == 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
