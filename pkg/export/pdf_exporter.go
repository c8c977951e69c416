package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF. It backs the
// "nota" documents generated for travel requests and at-cost claims.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// PDFSection is one page of a rendered document.
type PDFSection struct {
	Title    string
	Subtitle string
	Preamble []string
	Table    Dataset
	Footer   []string
}

// Render creates a single-page PDF with an optional title, preamble lines
// and a table body.
func (e *PDFExporter) Render(data Dataset, title string, preamble ...string) ([]byte, error) {
	return e.RenderSections([]PDFSection{{Title: title, Preamble: preamble, Table: data}})
}

// RenderSections creates a PDF with one page per section. Documents such as
// the combined request packet put the request note and the report on
// consecutive pages of the same file.
func (e *PDFExporter) RenderSections(sections []PDFSection) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	for _, section := range sections {
		pdf.AddPage()

		if section.Title != "" {
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 10, strings.ToUpper(section.Title), "", 1, "C", false, 0, "")
		}
		if section.Subtitle != "" {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 7, section.Subtitle, "", 1, "C", false, 0, "")
		}
		pdf.Ln(2)

		if len(section.Preamble) > 0 {
			pdf.SetFont("Arial", "", 10)
			for _, line := range section.Preamble {
				pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
			}
			pdf.Ln(3)
		}

		if len(section.Table.Headers) > 0 {
			pdf.SetFont("Arial", "B", 10)
			colWidth := 190.0 / float64(len(section.Table.Headers))
			for _, header := range section.Table.Headers {
				pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)

			pdf.SetFont("Arial", "", 9)
			for _, row := range section.Table.Rows {
				for _, header := range section.Table.Headers {
					pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
				}
				pdf.Ln(-1)
			}
		}

		if len(section.Footer) > 0 {
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 10)
			for _, line := range section.Footer {
				pdf.CellFormat(0, 6, line, "", 1, "R", false, 0, "")
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
