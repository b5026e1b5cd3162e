// Package extractor pulls the text layer out of PDF files, page by page.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

var (
	// ErrSourceNotFound means the input path does not resolve to a readable file.
	ErrSourceNotFound = errors.New("source pdf not found")
	// ErrNoExtractableText means the PDF opened but no page yielded usable text.
	ErrNoExtractableText = errors.New("no extractable text in pdf")
)

// MinPageChars is the minimum raw text length for a page to count as
// text-bearing. Shorter pages are treated as image-only and skipped.
const MinPageChars = 50

// Page is the extracted text of a single PDF page.
type Page struct {
	Number int
	Text   string
}

// Ref identifies a PDF on disk. Callers that hold a bare path use Path;
// upload handlers that carry extra metadata implement Ref themselves.
type Ref interface {
	PDFPath() string
}

// Path is a Ref backed by a plain file-system path.
type Path string

func (p Path) PDFPath() string { return string(p) }

// ResolvePath canonicalizes a Ref to an absolute path and verifies the file
// exists. It fails with ErrSourceNotFound before any page processing.
func ResolvePath(ref Ref) (string, error) {
	path := ref.PDFPath()
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrSourceNotFound)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return abs, nil
}

// ExtractPages opens the PDF at ref and returns the text of every page that
// carries at least MinPageChars of raw text. Per-page extraction errors skip
// that page only; partial success is the normal case. Returns
// ErrNoExtractableText when no page contributed anything.
func ExtractPages(ref Ref) ([]Page, error) {
	path, err := ResolvePath(ref)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if len(strings.TrimSpace(text)) < MinPageChars {
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoExtractableText, filepath.Base(path))
	}
	return pages, nil
}

// Extract concatenates the usable pages of the PDF into a single string.
func Extract(ref Ref) (string, error) {
	pages, err := ExtractPages(ref)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for _, p := range pages {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(p.Text)
	}
	return buf.String(), nil
}

// JoinPages flattens already-extracted pages into one string. Used when the
// caller needs the page slice and the concatenation.
func JoinPages(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}
