// Package ingestion loads raw text for the analysis pipeline from local
// documents and remote job postings.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractFromFile reads a CV or job description from disk and returns its
// plain text. PDF files are parsed page by page; anything else is treated
// as UTF-8 text.
func ExtractFromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, expected a file", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return CleanText(string(data)), nil
	}
}

// extractPDF pulls text from every page, skipping pages the parser cannot
// decode so one corrupt page does not sink the whole document.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		text := pageText(reader.Page(i), fonts)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := CleanText(sb.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in PDF %s", path)
	}
	return out, nil
}

func pageText(page pdf.Page, fonts map[string]*pdf.Font) (text string) {
	// The pdf library panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	if page.V.IsNull() {
		return ""
	}
	for _, name := range page.Fonts() {
		if _, ok := fonts[name]; !ok {
			font := page.Font(name)
			fonts[name] = &font
		}
	}
	out, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return out
}

// CleanText collapses whitespace runs and trims blank lines so prompt
// payloads stay compact.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
