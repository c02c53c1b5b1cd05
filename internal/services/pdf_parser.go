package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
}

// ExtractionError wraps any failure from the underlying PDF library
// (corrupt file, unsupported encryption). Callers surface it as a
// user-facing error banner and halt the current parse attempt.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not read PDF: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText extracts plain text from a PDF payload, pages in document
// order joined with newlines. A page with no extractable text contributes
// an empty string rather than an error, so the newline count implicitly
// preserves the page count. An empty result is not an error here; the
// short-text policy belongs to the caller.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var pages []string
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page contributes nothing; the rest of
			// the document still extracts.
			pages = append(pages, "")
			continue
		}

		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}
