// Package resume turns an uploaded document into a merged skill list on the
// user's profile: text extraction, optional LLM enrichment, and a set-union
// skill merge.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction failure modes.
var (
	ErrExtractionFailed = errors.New("failed to extract text from document")
	ErrEmptyContent     = errors.New("document contains no extractable text")
)

// ExtractText decodes the PDF at path into per-page text joined by newlines.
// The pdf library panics on some malformed documents, so decoding runs behind
// a recover that folds panics into ErrExtractionFailed.
func ExtractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtractionFailed, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrExtractionFailed, i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text = strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}
