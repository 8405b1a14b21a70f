package pdf

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Generator converts rendered HTML markup into A4 PDF bytes via wkhtmltopdf.
type Generator struct{}

// NewGenerator creates a new PDF generator. If binPath is non-empty it is
// used as the wkhtmltopdf binary location; otherwise PATH lookup applies.
func NewGenerator(binPath string) *Generator {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}
	return &Generator{}
}

// Generate renders the markup to a single A4 PDF document and returns the
// raw bytes. Errors from the external process are returned, never swallowed.
func (g *Generator) Generate(ctx context.Context, markup string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("pdf generator init: %w", err)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(markup))
	page.DisableExternalLinks.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}

	return pdfg.Bytes(), nil
}
