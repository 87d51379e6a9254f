package tui

import "github.com/andy/depobill/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// UseAddressMsg fills the invoice's client block from the address book
type UseAddressMsg struct {
	Record domain.AddressRecord
}

// ApplyPrefillMsg replaces the invoice rows with generated ones
type ApplyPrefillMsg struct {
	Kind  string
	Items []domain.LineItem
}
