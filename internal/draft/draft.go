// Package draft reads invoice drafts from YAML so an invoice can be
// exported without the interactive form.
package draft

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/prefill"
	"github.com/andy/depobill/internal/repository"
	"github.com/andy/depobill/internal/service"
)

var ErrUnknownPrefill = errors.New("prefill kind must be deposition or copy")

// Draft is the on-disk shape of one invoice. Amounts are strings so
// they reach the ledger without passing through float64.
type Draft struct {
	Number    int      `yaml:"number"`
	Date      string   `yaml:"date"`
	PayableTo string   `yaml:"payable_to"`
	CaseInfo  string   `yaml:"case_info"`
	Biller    Biller   `yaml:"biller"`
	Client    Client   `yaml:"client"`
	Prefill   *Prefill `yaml:"prefill"`
	Items     []Item   `yaml:"items"`
}

// Biller overrides individual fields of the saved profile
type Biller struct {
	Name      string `yaml:"name"`
	Address   string `yaml:"address"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	PayableTo string `yaml:"payable_to"`
}

// Client either spells out the client or names an address book entry.
// Fields given alongside address_book win over the saved ones.
type Client struct {
	AddressBook string `yaml:"address_book"`
	Name        string `yaml:"name"`
	Company     string `yaml:"company"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
}

type Item struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
}

// Prefill generates rows ahead of Items. Empty rates fall back to config.
type Prefill struct {
	Kind              string `yaml:"kind"` // deposition or copy
	Date              string `yaml:"date"`
	Deponent          string `yaml:"deponent"`
	Pages             int    `yaml:"pages"`
	Rate              string `yaml:"rate"`
	Copies            int    `yaml:"copies"`
	CopyRate          string `yaml:"copy_rate"`
	Extra             string `yaml:"extra"`
	AppearanceHours   string `yaml:"appearance_hours"`
	AppearanceRate    string `yaml:"appearance_rate"`
	ExhibitsBW        int    `yaml:"exhibits_bw"`
	ExhibitsBWRate    string `yaml:"exhibits_bw_rate"`
	ExhibitsColor     int    `yaml:"exhibits_color"`
	ExhibitsColorRate string `yaml:"exhibits_color_rate"`
}

// Load reads and parses a draft file
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return Parse(data)
}

// Parse decodes a draft document
func Parse(data []byte) (*Draft, error) {
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	if d.Prefill != nil {
		switch d.Prefill.Kind {
		case "deposition", "copy":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPrefill, d.Prefill.Kind)
		}
	}
	return &d, nil
}

// Ledger builds the draft's line items: prefill rows first, then items
func (d *Draft) Ledger(cfg config.PrefillConfig, today time.Time) *domain.Ledger {
	l := domain.NewLedger()
	if d.Prefill != nil {
		prefill.Apply(l, d.Prefill.generate(cfg, today))
	}
	for _, it := range d.Items {
		qty := "1"
		if strings.TrimSpace(it.Quantity) != "" {
			qty = it.Quantity
		}
		l.AddRow(it.Description, domain.ParseAmount(qty), domain.ParseAmount(it.UnitPrice))
	}
	return l
}

// Request assembles the export request. profile is the saved biller profile;
// the draft's biller fields override it.
func (d *Draft) Request(ctx context.Context, profile domain.BillerProfile, addresses repository.AddressBookRepository, cfg config.PrefillConfig, today time.Time) (service.ExportRequest, error) {
	client, err := d.ResolveClient(ctx, addresses)
	if err != nil {
		return service.ExportRequest{}, err
	}

	date := d.Date
	if strings.TrimSpace(date) == "" {
		date = today.Format("2006-01-02")
	}

	return service.ExportRequest{
		Biller: profile.Merge(domain.BillerProfile{
			Name:          d.Biller.Name,
			Address:       d.Biller.Address,
			Phone:         d.Biller.Phone,
			Email:         d.Biller.Email,
			PayableToName: d.Biller.PayableTo,
		}),
		Client:    client,
		CaseInfo:  d.CaseInfo,
		Number:    d.Number,
		Date:      date,
		Items:     d.Ledger(cfg, today).Rows(),
		PayableTo: d.PayableTo,
	}, nil
}

// ResolveClient returns the client record, reading the address book entry when one is named
func (d *Draft) ResolveClient(ctx context.Context, addresses repository.AddressBookRepository) (domain.AddressRecord, error) {
	c := d.Client
	rec := domain.AddressRecord{}
	if name := strings.TrimSpace(c.AddressBook); name != "" {
		saved, err := addresses.Lookup(ctx, name)
		if err != nil {
			return domain.AddressRecord{}, fmt.Errorf("client %q: %w", c.AddressBook, err)
		}
		rec = *saved
	}

	str(&rec.Name, c.Name)
	str(&rec.Company, c.Company)
	str(&rec.Address, c.Address)
	str(&rec.Phone, c.Phone)
	str(&rec.Email, c.Email)
	return rec, nil
}

func (p *Prefill) generate(cfg config.PrefillConfig, today time.Time) []domain.LineItem {
	ex := func(base prefill.Exhibits) prefill.Exhibits {
		base.BW = p.ExhibitsBW
		base.Color = p.ExhibitsColor
		rate(&base.BWRate, p.ExhibitsBWRate)
		rate(&base.ColorRate, p.ExhibitsColorRate)
		return base
	}

	if p.Kind == "copy" {
		params := prefill.DefaultCopyParams(cfg, today)
		str(&params.Date, p.Date)
		params.Deponent = p.Deponent
		params.Pages = p.Pages
		params.Extra = p.Extra
		rate(&params.Rate, p.Rate)
		params.Exhibits = ex(params.Exhibits)
		return prefill.CopyOfDeposition(params)
	}

	params := prefill.DefaultDepositionParams(cfg, today)
	str(&params.Date, p.Date)
	params.Deponent = p.Deponent
	params.Pages = p.Pages
	params.Copies = p.Copies
	params.Extra = p.Extra
	rate(&params.Rate, p.Rate)
	rate(&params.CopyRate, p.CopyRate)
	rate(&params.AppearanceHours, p.AppearanceHours)
	rate(&params.AppearanceRate, p.AppearanceRate)
	params.Exhibits = ex(params.Exhibits)
	return prefill.Deposition(params)
}

func str(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func rate(dst *decimal.Decimal, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = domain.ParseAmount(v)
	}
}
