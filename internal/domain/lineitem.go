package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.jetify.com/typeid/v2"
)

// RowID identifies a line item for the lifetime of a draft
type RowID string

const rowIDPrefix = "li"

type LineItem struct {
	ID          RowID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Field names a mutable line item column
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unit_price"
)

// NewLineItem creates a line item with a fresh ID. Negative amounts are clamped to zero.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ID:          newRowID(),
		Description: description,
		Quantity:    nonNegative(quantity),
		UnitPrice:   nonNegative(unitPrice),
	}
}

// Total returns quantity * unit price, unrounded
func (i LineItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// IsBlank returns true if the row has no description and zero quantity and price
func (i LineItem) IsBlank() bool {
	return strings.TrimSpace(i.Description) == "" && i.Quantity.IsZero() && i.UnitPrice.IsZero()
}

func newRowID() RowID {
	tid, err := typeid.Generate(rowIDPrefix)
	if err != nil {
		panic(fmt.Sprintf("domain: invalid row id prefix %q: %v", rowIDPrefix, err))
	}
	return RowID(tid.String())
}
