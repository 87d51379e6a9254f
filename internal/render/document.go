// Package render turns an invoice draft into a Document, the layout-neutral
// description every exporter works from. Nothing here touches the disk.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andy/depobill/internal/domain"
)

var ErrInvalidDate = errors.New("invoice date must be YYYY-MM-DD")

const (
	Title = "INVOICE"

	// Letter paper at 96 DPI
	PageWidthPx     = 816
	PageMinHeightPx = 1056
	PagePaddingPx   = 72
)

// Input is everything the renderer needs for one invoice
type Input struct {
	Biller    domain.BillerProfile
	Client    domain.AddressRecord
	CaseInfo  string
	Number    int
	Date      string // YYYY-MM-DD
	Items     []domain.LineItem
	PayableTo string // Overrides Biller.PayableToName when set
}

type AddressBlock struct {
	Label   string
	Name    string
	Company string
	Lines   []string
	Phone   string
	Email   string
}

// HasContact returns true if a phone or email line should be shown
func (b AddressBlock) HasContact() bool {
	return b.Phone != "" || b.Email != ""
}

type Row struct {
	Description string
	Total       decimal.Decimal
	TotalText   string
}

type Geometry struct {
	WidthPx     int
	MinHeightPx int
	PaddingPx   int
}

// Document is the rendered invoice. Strings are raw text; escaping is the
// writer's job.
type Document struct {
	Title               string
	Number              int
	DateText            string
	ISODate             string
	From                AddressBlock
	To                  AddressBlock
	CaseInfo            []string
	Rows                []Row
	Total               decimal.Decimal
	TotalText           string
	PaymentInstructions string
	BaseName            string
	Page                Geometry
}

// Filename returns the suggested artifact name with the given extension
func (d *Document) Filename(ext string) string {
	return d.BaseName + "." + strings.TrimPrefix(ext, ".")
}

// Render builds the Document for in
func Render(in Input) (*Document, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	iso := date.Format("2006-01-02")

	rows := make([]Row, 0, len(in.Items))
	for _, item := range in.Items {
		if item.IsBlank() {
			continue
		}
		total := item.Total()
		rows = append(rows, Row{
			Description: item.Description,
			Total:       total,
			TotalText:   domain.FormatCurrency(total),
		})
	}
	total := domain.SumTotals(in.Items)

	return &Document{
		Title:    Title,
		Number:   in.Number,
		DateText: date.Format("January 2, 2006"),
		ISODate:  iso,
		From: AddressBlock{
			Label: "From:",
			Name:  in.Biller.Name,
			Lines: splitLines(in.Biller.Address),
			Phone: in.Biller.Phone,
			Email: in.Biller.Email,
		},
		To: AddressBlock{
			Label:   "Bill To:",
			Name:    in.Client.Name,
			Company: in.Client.Company,
			Lines:   splitLines(in.Client.Address),
			Phone:   in.Client.Phone,
			Email:   in.Client.Email,
		},
		CaseInfo:            splitLines(in.CaseInfo),
		Rows:                rows,
		Total:               total,
		TotalText:           domain.FormatCurrency(total),
		PaymentInstructions: paymentLine(in),
		BaseName:            "Invoice_" + strconv.Itoa(in.Number) + "_" + iso,
		Page: Geometry{
			WidthPx:     PageWidthPx,
			MinHeightPx: PageMinHeightPx,
			PaddingPx:   PagePaddingPx,
		},
	}, nil
}

func paymentLine(in Input) string {
	payable := strings.TrimSpace(in.PayableTo)
	if payable == "" {
		payable = strings.TrimSpace(in.Biller.PayableToName)
	}
	line := "Due upon receipt."
	if payable != "" {
		line += " Please make checks payable to " + payable + "."
	}
	return line
}

// splitLines breaks multi-line text into display lines. Line breaks are
// kept as breaks, never turned into paragraphs.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
