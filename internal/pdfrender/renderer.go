// Package pdfrender turns a composed Document into the downloadable
// PDF artifact. The Renderer interface keeps the composer independent
// of the rendering technology; the fpdf implementation below is the
// only one in production.
package pdfrender

import (
	"bytes"

	"github.com/contratoseguro/contratos/internal/compose"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Renderer produces the binary artifact for a document.
type Renderer interface {
	Render(doc compose.Document) ([]byte, error)
}

// FPDF renders the fixed A4 layout: centered underlined title, buyer
// block, clause paragraphs, two-column vehicle block, right-aligned
// dateline and a centered signature rule.
type FPDF struct{}

func NewFPDF() *FPDF {
	return &FPDF{}
}

func (r *FPDF) Render(doc compose.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; the translator maps the Portuguese
	// accented characters into it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range doc.Buyer {
		pdf.CellFormat(0, 7, tr(f.Label+": "+f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, clause := range doc.Clauses {
		pdf.MultiCell(0, 6, tr(clause), "", "L", false)
		pdf.Ln(3)
	}
	pdf.Ln(2)

	// Vehicle data in two columns, half the printable width each.
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / 2
	for i, f := range doc.Vehicle {
		pdf.CellFormat(colW, 7, tr(f.Label+": "+f.Value), "", 0, "L", false, 0, "")
		if i%2 == 1 {
			pdf.Ln(-1)
		}
	}
	if len(doc.Vehicle)%2 == 1 {
		pdf.Ln(-1)
	}

	pdf.Ln(10)
	pdf.CellFormat(0, 7, tr(doc.Dateline), "", 1, "R", false, 0, "")

	pdf.Ln(20)
	x := (pageW - 100) / 2
	pdf.Line(x, pdf.GetY(), x+100, pdf.GetY())
	pdf.Ln(2)
	for _, line := range doc.Signature {
		pdf.CellFormat(0, 6, tr(line), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}
	return buf.Bytes(), nil
}
