// Package prefill builds the preset line items for a deposition invoice
// or a copy-of-deposition invoice.
package prefill

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
)

// MinimumAppearanceHours is the least an appearance is ever billed for
var MinimumAppearanceHours = decimal.NewFromInt(3)

// Exhibits describes printed exhibit counts and their per-page rates
type Exhibits struct {
	BW        int
	BWRate    decimal.Decimal
	Color     int
	ColorRate decimal.Decimal
}

// DepositionParams feeds Deposition
type DepositionParams struct {
	Date     string // YYYY-MM-DD; anything else is left out of the description
	Deponent string
	Pages    int
	Rate     decimal.Decimal
	Copies   int
	CopyRate decimal.Decimal
	Extra    string

	AppearanceHours decimal.Decimal
	AppearanceRate  decimal.Decimal

	Exhibits Exhibits
}

// CopyParams feeds CopyOfDeposition
type CopyParams struct {
	Date     string
	Deponent string
	Pages    int
	Rate     decimal.Decimal
	Extra    string

	Exhibits Exhibits
}

// Deposition returns the deposition row, the appearance fee row and,
// when any exhibits were printed, the exhibits row.
func Deposition(p DepositionParams) []domain.LineItem {
	pages := clampCount(p.Pages)
	copies := clampCount(p.Copies)

	// Each ordered copy is billed per page on top of the original
	rate := nonNegative(p.Rate).Add(decimal.NewFromInt(int64(copies)).Mul(nonNegative(p.CopyRate)))

	items := []domain.LineItem{
		domain.NewLineItem(describe("DEPOSITION", p.Date, p.Deponent, pages, p.Extra), decimal.NewFromInt(int64(pages)), rate),
		appearance(nonNegative(p.AppearanceHours), nonNegative(p.AppearanceRate)),
	}
	if ex, ok := exhibits(p.Exhibits); ok {
		items = append(items, ex)
	}
	return items
}

// CopyOfDeposition returns the copy row and, when any exhibits were printed,
// the exhibits row.
func CopyOfDeposition(p CopyParams) []domain.LineItem {
	pages := clampCount(p.Pages)

	items := []domain.LineItem{
		domain.NewLineItem(describe("COPY OF DEPOSITION", p.Date, p.Deponent, pages, p.Extra), decimal.NewFromInt(int64(pages)), nonNegative(p.Rate)),
	}
	if ex, ok := exhibits(p.Exhibits); ok {
		items = append(items, ex)
	}
	return items
}

// Apply replaces the ledger contents with items
func Apply(l *domain.Ledger, items []domain.LineItem) {
	l.Replace(items)
}

// DefaultDepositionParams returns the form defaults: configured rates and today's date
func DefaultDepositionParams(cfg config.PrefillConfig, today time.Time) DepositionParams {
	return DepositionParams{
		Date:            today.Format("2006-01-02"),
		Rate:            domain.ParseAmount(cfg.DepositionRate),
		CopyRate:        domain.ParseAmount(cfg.CopyRate),
		AppearanceHours: domain.ParseAmount(cfg.AppearanceHours),
		AppearanceRate:  domain.ParseAmount(cfg.AppearanceRate),
		Exhibits:        defaultExhibits(cfg),
	}
}

// DefaultCopyParams returns the copy form defaults
func DefaultCopyParams(cfg config.PrefillConfig, today time.Time) CopyParams {
	return CopyParams{
		Date:     today.Format("2006-01-02"),
		Rate:     domain.ParseAmount(cfg.CopyOfDepoRate),
		Exhibits: defaultExhibits(cfg),
	}
}

func defaultExhibits(cfg config.PrefillConfig) Exhibits {
	return Exhibits{
		BWRate:    domain.ParseAmount(cfg.ExhibitBWRate),
		ColorRate: domain.ParseAmount(cfg.ExhibitColorRate),
	}
}

func describe(label, date, deponent string, pages int, extra string) string {
	var b strings.Builder
	b.WriteString(label)
	if d, ok := shortDate(date); ok {
		b.WriteString(" " + d)
	}
	if name := strings.TrimSpace(deponent); name != "" {
		b.WriteString(" - " + name)
	}
	if pages > 0 {
		fmt.Fprintf(&b, " - %d pages", pages)
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		b.WriteString(" - " + extra)
	}
	return b.String()
}

// shortDate turns "2024-03-05" into "03/05/24" by slicing, with no time zone involved
func shortDate(iso string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(iso), "-")
	if len(parts) != 3 || len(parts[0]) < 2 {
		return "", false
	}
	year, month, day := parts[0], parts[1], parts[2]
	return fmt.Sprintf("%s/%s/%s", month, day, year[len(year)-2:]), true
}

func appearance(hours, rate decimal.Decimal) domain.LineItem {
	if hours.LessThanOrEqual(MinimumAppearanceHours) {
		return domain.NewLineItem("Appearance Fee - 3h minimum", MinimumAppearanceHours, rate)
	}
	desc := fmt.Sprintf("Appearance Fee - %sh @ $%s/h", hours.String(), rate.StringFixed(2))
	return domain.NewLineItem(desc, hours, rate)
}

func exhibits(e Exhibits) (domain.LineItem, bool) {
	bw := clampCount(e.BW)
	color := clampCount(e.Color)
	if bw == 0 && color == 0 {
		return domain.LineItem{}, false
	}

	var desc string
	switch {
	case bw > 0 && color > 0:
		desc = fmt.Sprintf("Exhibits %d BW / %d Color", bw, color)
	case bw > 0:
		desc = fmt.Sprintf("Exhibits %d BW", bw)
	default:
		desc = fmt.Sprintf("Exhibits %d Color", color)
	}

	price := decimal.NewFromInt(int64(bw)).Mul(nonNegative(e.BWRate)).
		Add(decimal.NewFromInt(int64(color)).Mul(nonNegative(e.ColorRate)))
	return domain.NewLineItem(desc, decimal.NewFromInt(1), price), true
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
