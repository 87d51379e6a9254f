package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered set of line items on one invoice draft.
// Row order is the render order. Amounts are held as decimals and
// display strings are always derived, never read back.
type Ledger struct {
	items []LineItem
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{items: make([]LineItem, 0)}
}

// AddRow appends a row and returns its ID
func (l *Ledger) AddRow(description string, quantity, unitPrice decimal.Decimal) RowID {
	item := NewLineItem(description, quantity, unitPrice)
	l.items = append(l.items, item)
	return item.ID
}

// AddEmptyRow appends the default row: no description, quantity 1, price 0
func (l *Ledger) AddEmptyRow() RowID {
	return l.AddRow("", decimal.NewFromInt(1), decimal.Zero)
}

// RemoveRow deletes a row. Removing an unknown ID is a no-op and returns false.
func (l *Ledger) RemoveRow(id RowID) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return true
}

// UpdateRow sets one field of a row from raw input.
// Quantity and unit price are coerced with ParseAmount.
func (l *Ledger) UpdateRow(id RowID, field Field, value string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}

	switch field {
	case FieldDescription:
		l.items[idx].Description = value
	case FieldQuantity:
		l.items[idx].Quantity = ParseAmount(value)
	case FieldUnitPrice:
		l.items[idx].UnitPrice = ParseAmount(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Reorder moves a row to newIndex, shifting the others. The index is clamped to the ledger bounds.
func (l *Ledger) Reorder(id RowID, newIndex int) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(l.items)-1 {
		newIndex = len(l.items) - 1
	}
	if newIndex == idx {
		return nil
	}

	item := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.items = append(l.items[:newIndex], append([]LineItem{item}, l.items[newIndex:]...)...)
	return nil
}

// MoveOnto drops the source row onto the target row's position.
// Dragging down lands after the target, dragging up lands before it.
func (l *Ledger) MoveOnto(sourceID, targetID RowID) error {
	target := l.indexOf(targetID)
	if target < 0 {
		return fmt.Errorf("%w: %s", ErrRowNotFound, targetID)
	}
	return l.Reorder(sourceID, target)
}

// Clear removes every row
func (l *Ledger) Clear() {
	l.items = make([]LineItem, 0)
}

// Replace swaps the ledger contents for the given items, in order.
// Items without an ID get one.
func (l *Ledger) Replace(items []LineItem) {
	l.items = make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = newRowID()
		}
		item.Quantity = nonNegative(item.Quantity)
		item.UnitPrice = nonNegative(item.UnitPrice)
		l.items = append(l.items, item)
	}
}

// Row returns a copy of the row with the given ID
func (l *Ledger) Row(id RowID) (LineItem, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return LineItem{}, false
	}
	return l.items[idx], true
}

// Rows returns a snapshot of the rows in order
func (l *Ledger) Rows() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of rows
func (l *Ledger) Len() int {
	return len(l.items)
}

// BalanceDue sums every row total without intermediate rounding
func (l *Ledger) BalanceDue() decimal.Decimal {
	return SumTotals(l.items)
}

// SumTotals sums quantity * unit price over items
func SumTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

func (l *Ledger) indexOf(id RowID) int {
	for i, item := range l.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
