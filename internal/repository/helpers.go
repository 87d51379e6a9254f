package repository

import (
	"time"
)

// Storage keys in the kv table. Profile fields and the sequence are plain
// text; the address book is one JSON map keyed by client name.
const (
	KeyLastInvoiceNumber = "lastInvoiceNumber"
	KeyName              = "myName"
	KeyAddress           = "myAddress"
	KeyPhone             = "myPhone"
	KeyEmail             = "myEmail"
	KeyPayableTo         = "checksPayableName"
	KeyAddressBook       = "clientAddressBook"
)

// AllKeys lists every key the application writes
var AllKeys = []string{
	KeyLastInvoiceNumber,
	KeyName,
	KeyAddress,
	KeyPhone,
	KeyEmail,
	KeyPayableTo,
	KeyAddressBook,
}

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// formatTime returns the current time formatted as RFC3339
func formatTime() string {
	return time.Now().Format(timeLayout)
}
