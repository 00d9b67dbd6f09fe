package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
)

type fakePages struct {
	pages []string
	err   map[int]error
}

func (f fakePages) NumPage() int { return len(f.pages) }

func (f fakePages) PageText(index int) (string, error) {
	if err, ok := f.err[index]; ok {
		return "", err
	}
	return f.pages[index-1], nil
}

func TestJoinPages_SkipsEmptyPages(t *testing.T) {
	text, err := joinPages(fakePages{pages: []string{"Hello ", "", "World"}})
	require.NoError(t, err)

	assert.Equal(t, "Hello World", text)
}

func TestJoinPages_NoPages(t *testing.T) {
	text, err := joinPages(fakePages{})
	require.NoError(t, err)

	assert.Equal(t, "", text)
}

func TestJoinPages_PageError(t *testing.T) {
	_, err := joinPages(fakePages{
		pages: []string{"a", "b"},
		err:   map[int]error{2: errors.New("bad font")},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

// buildPDF writes a minimal PDF with one Helvetica text object per non-empty
// page. Empty pages carry no content stream.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()

	var objects []string
	add := func(body string) int {
		objects = append(objects, body)
		return len(objects)
	}

	add("<< /Type /Catalog /Pages 2 0 R >>")
	add("") // page tree, filled in below
	font := add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var kids bytes.Buffer
	for _, text := range pages {
		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >>", font)
		if text != "" {
			stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
			content := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
			page += fmt.Sprintf(" /Contents %d 0 R", content)
		}
		id := add(page + " >>")
		fmt.Fprintf(&kids, "%d 0 R ", id)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pages))

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return out.Bytes()
}

func TestExtract_PDFConcatenatesPagesWithoutSeparators(t *testing.T) {
	data := buildPDF(t, []string{"Hello ", "", "World"})

	text, err := NewDocumentExtractor().Extract(data, models.KindPaginated)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", text)
}

func TestExtract_PDFWithOnlyEmptyPages(t *testing.T) {
	text, err := NewDocumentExtractor().Extract(buildPDF(t, []string{"", ""}), models.KindPaginated)
	require.NoError(t, err)

	assert.Equal(t, "", text)
}

func TestExtract_UnsupportedKind(t *testing.T) {
	_, err := NewDocumentExtractor().Extract([]byte("plain"), models.KindUnsupported)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnsupportedFormat))
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := NewDocumentExtractor().Extract([]byte("definitely not a pdf"), models.KindPaginated)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrExtractionFailed))
}

func TestExtract_CorruptDOCX(t *testing.T) {
	_, err := NewDocumentExtractor().Extract([]byte("definitely not a zip"), models.KindFlat)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrExtractionFailed))
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>
      <w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r>
    </w:p>
    <w:p/>
    <w:p>
      <w:r><w:t>Go</w:t><w:tab/><w:t>Kubernetes</w:t></w:r>
    </w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p>
      <w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r>
      <w:r><w:pict><w:txbxContent><w:p><w:r><w:t>boxed</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>
    </w:p>
  </w:body>
</w:document>`

func TestBodyParagraphs(t *testing.T) {
	paragraphs, err := bodyParagraphs(documentXML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane Doe", "", "Go\tKubernetes", "Line one\nLine two"}, paragraphs)
}

func TestBodyParagraphs_MalformedXML(t *testing.T) {
	_, err := bodyParagraphs("<w:document><w:body><w:p>")
	assert.Error(t, err)
}

func buildDOCX(t *testing.T, document string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": document,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestExtract_DOCXJoinsParagraphsWithNewlines(t *testing.T) {
	data := buildDOCX(t, documentXML)

	text, err := NewDocumentExtractor().Extract(data, models.KindFlat)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nGo\tKubernetes\nLine one\nLine two", text)
}
