package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// DocumentSummary is the flattened view of a coordination document handed
// to the exporter: names already resolved, one section per subject.
type DocumentSummary struct {
	Title     string
	AreaName  string
	StartDate string
	EndDate   string
	Status    string
	Nuclei    []string
	Subjects  []SubjectSection
}

// SubjectSection lists the categories assigned to one subject.
type SubjectSection struct {
	SubjectName string
	Categories  []string
}

// PDFExporter renders coordination documents into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF for one document summary.
func (e *PDFExporter) Render(summary DocumentSummary) ([]byte, error) {
	if summary.Title == "" {
		return nil, fmt.Errorf("pdf requires a title")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(summary.Title), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Area: %s", summary.AreaName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", summary.StartDate, summary.EndDate), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", summary.Status), "", 1, "", false, 0, "")
	pdf.Ln(4)

	if len(summary.Nuclei) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Problematic nuclei", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, nucleus := range summary.Nuclei {
			pdf.CellFormat(0, 6, "- "+nucleus, "", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	for _, section := range summary.Subjects {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, section.SubjectName, "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		if len(section.Categories) == 0 {
			pdf.CellFormat(0, 6, "(no categories assigned)", "", 1, "", false, 0, "")
		}
		for _, category := range section.Categories {
			pdf.CellFormat(0, 6, "- "+category, "", 1, "", false, 0, "")
		}
		pdf.Ln(2)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
