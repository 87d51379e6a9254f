package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/depobill/internal/render"
)

// pxToPt converts 96 DPI layout pixels to PDF points
const pxToPt = 72.0 / 96.0

// PDFRasterizer draws the invoice onto US Letter pages with gofpdf.
// Text outside cp1252 is replaced, since only the core fonts are used.
type PDFRasterizer struct{}

func (r *PDFRasterizer) Format() Format { return FormatPDF }

func (r *PDFRasterizer) Rasterize(ctx context.Context, doc *render.Document) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := r.draw(doc)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out pdf: %w", err)
	}

	// Layout can take a moment on long invoices; honour a cancel that arrived meanwhile
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, err := newArtifact(doc, FormatPDF)
	if err != nil {
		return nil, err
	}
	if err := pdf.OutputFileAndClose(a.Path); err != nil {
		a.Cleanup()
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return a, nil
}

type pdfPage struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	left   float64
	width  float64
	lineHt float64
}

func (r *PDFRasterizer) draw(doc *render.Document) *gofpdf.Fpdf {
	margin := float64(doc.Page.PaddingPx) * pxToPt
	pageW := float64(doc.Page.WidthPx) * pxToPt
	pageH := float64(doc.Page.MinHeightPx) * pxToPt

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle(doc.Title+" "+strconv.Itoa(doc.Number), true)
	pdf.SetCreator("depobill", true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	p := &pdfPage{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		left:   margin,
		width:  pageW - 2*margin,
		lineHt: 14,
	}
	pdf.SetTextColor(0x33, 0x33, 0x33)

	p.header(doc)
	p.addresses(doc.From, doc.To)
	if len(doc.CaseInfo) > 0 {
		p.caseInfo(doc.CaseInfo)
	}
	p.items(doc.Rows)
	p.footer(doc)
	return pdf
}

func (p *pdfPage) header(doc *render.Document) {
	top := p.pdf.GetY()

	p.pdf.SetFont("Helvetica", "B", 24)
	p.pdf.CellFormat(p.width/2, 28, p.tr(doc.Title), "", 0, "L", false, 0, "")

	p.pdf.SetFont("Helvetica", "", 10.5)
	p.pdf.SetXY(p.left+p.width/2, top)
	p.pdf.CellFormat(p.width/2, p.lineHt, p.tr("Invoice #: "+strconv.Itoa(doc.Number)), "", 2, "R", false, 0, "")
	p.pdf.CellFormat(p.width/2, p.lineHt, p.tr("Date: "+doc.DateText), "", 2, "R", false, 0, "")

	p.pdf.SetXY(p.left, top+28+24)
}

// addresses draws From and Bill To side by side and moves below the taller one
func (p *pdfPage) addresses(from, to render.AddressBlock) {
	top := p.pdf.GetY()
	colW := p.width * 0.48

	endFrom := p.addressBlock(from, p.left, top, colW)
	endTo := p.addressBlock(to, p.left+p.width-colW, top, colW)

	bottom := endFrom
	if endTo > bottom {
		bottom = endTo
	}
	p.pdf.SetXY(p.left, bottom+18)
}

func (p *pdfPage) addressBlock(b render.AddressBlock, x, y, w float64) float64 {
	line := func(style string, size float64, text string) {
		p.pdf.SetFont("Helvetica", style, size)
		p.pdf.SetXY(x, y)
		p.pdf.MultiCell(w, p.lineHt, p.tr(text), "", "L", false)
		y = p.pdf.GetY()
	}

	p.pdf.SetTextColor(0x77, 0x77, 0x77)
	line("B", 9, b.Label)
	p.pdf.SetTextColor(0x33, 0x33, 0x33)

	line("B", 10.5, b.Name)
	if b.Company != "" {
		line("", 10.5, b.Company)
	}
	for _, l := range b.Lines {
		line("", 10.5, l)
	}
	if b.Phone != "" {
		line("", 10.5, "Phone: "+b.Phone)
	}
	if b.Email != "" {
		line("", 10.5, "Email: "+b.Email)
	}
	return y
}

func (p *pdfPage) caseInfo(lines []string) {
	p.pdf.SetFont("Helvetica", "B", 10.5)
	label := "Case Information: "
	labelW := p.pdf.GetStringWidth(label)
	p.pdf.CellFormat(labelW, p.lineHt, p.tr(label), "", 0, "L", false, 0, "")

	p.pdf.SetFont("Helvetica", "", 10.5)
	for i, l := range lines {
		if i > 0 {
			p.pdf.SetX(p.left + labelW)
		}
		p.pdf.MultiCell(p.width-labelW, p.lineHt, p.tr(l), "", "L", false)
	}
	p.pdf.Ln(12)
}

func (p *pdfPage) items(rows []render.Row) {
	totalW := 110.0
	descW := p.width - totalW

	p.pdf.SetFont("Helvetica", "B", 10.5)
	p.pdf.SetDrawColor(0x33, 0x33, 0x33)
	p.pdf.SetLineWidth(1.5)
	p.pdf.CellFormat(descW, 20, p.tr("Description"), "B", 0, "L", false, 0, "")
	p.pdf.CellFormat(totalW, 20, p.tr("Total"), "B", 1, "R", false, 0, "")

	p.pdf.SetFont("Helvetica", "", 10.5)
	p.pdf.SetDrawColor(0xdd, 0xdd, 0xdd)
	p.pdf.SetLineWidth(0.75)
	for _, row := range rows {
		lines := p.pdf.SplitLines([]byte(p.tr(row.Description)), descW-4)
		if len(lines) == 0 {
			lines = [][]byte{nil}
		}
		h := float64(len(lines))*p.lineHt + 8

		// Keep a wrapped row on one page
		_, pageH := p.pdf.GetPageSize()
		_, _, _, bottom := p.pdf.GetMargins()
		if p.pdf.GetY()+h > pageH-bottom {
			p.pdf.AddPage()
		}

		y := p.pdf.GetY()
		for i, l := range lines {
			p.pdf.SetXY(p.left, y+4+float64(i)*p.lineHt)
			p.pdf.CellFormat(descW, p.lineHt, string(l), "", 0, "L", false, 0, "")
		}
		p.pdf.SetXY(p.left+descW, y+4)
		p.pdf.CellFormat(totalW, p.lineHt, p.tr(row.TotalText), "", 0, "R", false, 0, "")
		p.pdf.Line(p.left, y+h, p.left+p.width, y+h)
		p.pdf.SetXY(p.left, y+h)
	}
}

func (p *pdfPage) footer(doc *render.Document) {
	p.pdf.Ln(16)

	p.pdf.SetFont("Helvetica", "", 12)
	label := "Balance Due:"
	amountW := 110.0
	p.pdf.CellFormat(p.width-amountW, 18, p.tr(label), "", 0, "R", false, 0, "")
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.CellFormat(amountW, 18, p.tr(doc.TotalText), "", 1, "R", false, 0, "")

	p.pdf.Ln(18)
	p.pdf.SetFont("Helvetica", "B", 10.5)
	label = "Payment Instructions: "
	labelW := p.pdf.GetStringWidth(label)
	p.pdf.CellFormat(labelW, p.lineHt, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 10.5)
	p.pdf.MultiCell(p.width-labelW, p.lineHt, p.tr(doc.PaymentInstructions), "", "L", false)
}
