// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF has no extractable text layer.
var ErrNoText = errors.New("no text layer found")

// Page is the text of one PDF page, one entry per visual row.
type Page struct {
	Number int
	Lines  []string
}

// extractPages reads the PDF at path and returns the text rows of every page.
// Pages without text are kept (with no lines) so page breaks line up with
// the source document.
func extractPages(path string) (pages []Page, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PDF %s: %w", path, err)
	}

	// ledongthuc/pdf panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}

	total := reader.NumPage()
	hasText := false
	for i := 1; i <= total; i++ {
		p := reader.Page(i)
		page := Page{Number: i}
		if !p.V.IsNull() {
			page.Lines = pageLines(p)
		}
		if len(page.Lines) > 0 {
			hasText = true
		}
		pages = append(pages, page)
	}

	if !hasText {
		return nil, fmt.Errorf("%s: %w", path, ErrNoText)
	}
	return pages, nil
}

// pageLines extracts text rows, using empty text runs as word boundaries.
func pageLines(page pdf.Page) []string {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return contentLines(page)
	}

	var lines []string
	for _, row := range rows {
		var line strings.Builder
		gap := false
		for _, word := range row.Content {
			if word.S == "" {
				gap = true
				continue
			}
			if line.Len() > 0 && gap && !strings.HasSuffix(line.String(), " ") {
				line.WriteByte(' ')
			}
			line.WriteString(word.S)
			gap = false
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// contentLines is the fallback when row grouping fails: it splits the raw
// content stream text on vertical position changes.
func contentLines(page pdf.Page) []string {
	var (
		lines []string
		line  strings.Builder
		lastY float64
	)
	flush := func() {
		if text := strings.TrimSpace(line.String()); text != "" {
			lines = append(lines, text)
		}
		line.Reset()
	}
	for i, t := range page.Content().Text {
		if i > 0 && t.Y != lastY {
			flush()
		}
		line.WriteString(t.S)
		lastY = t.Y
	}
	flush()
	return lines
}
