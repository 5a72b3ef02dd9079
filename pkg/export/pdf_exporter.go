package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin        = 10.0
	pdfTitleY        = 18.0
	pdfInfoY         = 26.0
	pdfInfoStep      = 5.0
	pdfLineHeight    = 4.5
	pdfCellPadding   = 1.5
	pdfSignatureGap  = 15.0
	pdfSignatureStep = 10.0
)

var pdfColumnWidths = []float64{18, 90, 25, 50}

// PDFExporter renders documents into an A4 portrait PDF.
type PDFExporter struct {
	logo []byte
}

// NewPDFExporter constructs a PDF exporter. logo may be nil.
func NewPDFExporter(logo []byte) *PDFExporter {
	return &PDFExporter{logo: logo}
}

// Render lays out logo, title, two-column header, table and signatures.
// The table header repeats on every page the table spans.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Columns) != len(pdfColumnWidths) {
		return nil, fmt.Errorf("pdf requires %d columns, got %d", len(pdfColumnWidths), len(doc.Columns))
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()

	e.addLogo(pdf)

	pdf.SetFont("Helvetica", "B", 14)
	title := tr(doc.Title)
	pdf.Text((pageWidth-pdf.GetStringWidth(title))/2, pdfTitleY, title)

	pdf.SetFont("Helvetica", "", 10)
	y := pdfInfoY
	for _, line := range doc.Info {
		pdf.Text(pdfMargin, y, tr(line.Left.Text()))
		if right := line.Right.Text(); right != "" {
			pdf.Text(pageWidth/2+5, y, tr(right))
		}
		y += pdfInfoStep
	}

	pdf.SetXY(pdfMargin, y+2)
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(229, 229, 229)
		for i, label := range doc.Columns {
			pdf.CellFormat(pdfColumnWidths[i], pdfLineHeight+2*pdfCellPadding, tr(label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for _, row := range doc.Rows {
		cells := []string{tr(row.Category), tr(row.Description), row.FoundText(), tr(row.Note)}
		lines := 1
		for i, text := range cells {
			if n := len(pdf.SplitLines([]byte(text), pdfColumnWidths[i]-2*pdfCellPadding)); n > lines {
				lines = n
			}
		}
		height := float64(lines)*pdfLineHeight + 2*pdfCellPadding

		if pdf.GetY()+height > pageHeight-pdfMargin {
			pdf.AddPage()
			pdf.SetXY(pdfMargin, pdfMargin)
			drawHeader()
		}

		x, top := pdfMargin, pdf.GetY()
		for i, text := range cells {
			width := pdfColumnWidths[i]
			pdf.Rect(x, top, width, height, "D")
			align := "L"
			if i == 2 {
				align = "C"
			}
			pdf.SetXY(x+pdfCellPadding, top+pdfCellPadding)
			pdf.MultiCell(width-2*pdfCellPadding, pdfLineHeight, text, "", align, false)
			x += width
		}
		pdf.SetXY(pdfMargin, top+height)
	}

	sigY := pdf.GetY() + pdfSignatureGap
	if sigY+float64(len(doc.Signatures))*pdfSignatureStep > pageHeight-pdfMargin {
		pdf.AddPage()
		sigY = pdfMargin + pdfSignatureGap
	}
	pdf.SetFont("Helvetica", "", 10)
	for i, sig := range doc.Signatures {
		lineY := sigY + float64(i)*pdfSignatureStep
		pdf.Text(pdfMargin, lineY, tr(sig.Text()))
		pdf.Text(pageWidth/2, lineY, SignaturePrompt)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addLogo(pdf *gofpdf.Fpdf) {
	if len(e.logo) == 0 {
		return
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(e.logo))
	if err != nil {
		return
	}
	imageType := "PNG"
	if format == "jpeg" {
		imageType = "JPG"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(e.logo))
	if pdf.Err() {
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("logo", pdfMargin, pdfMargin, 25, 10, false, opts, 0, "")
}
