package repository

import (
	"context"
	"errors"

	"github.com/andy/depobill/internal/domain"
)

var (
	ErrAddressNotFound      = errors.New("address not found")
	ErrInvalidInvoiceNumber = errors.New("invoice number must be 1 or greater")
)

// KVStore is the string key/value store everything else persists through
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error) // false if the key is absent
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// AddressBookRepository manages saved client addresses, keyed by client name
type AddressBookRepository interface {
	Upsert(ctx context.Context, rec domain.AddressRecord) error
	Lookup(ctx context.Context, name string) (*domain.AddressRecord, error)
	List(ctx context.Context) ([]domain.AddressRecord, error) // Sorted by name
	DeleteMany(ctx context.Context, names []string) (int, error)
}

// ProfileRepository manages the biller profile (singleton)
type ProfileRepository interface {
	Get(ctx context.Context) (domain.BillerProfile, error)
	Save(ctx context.Context, p domain.BillerProfile) error
}

// SequenceRepository manages the invoice number counter
type SequenceRepository interface {
	Current(ctx context.Context) int // Never less than 1
	Set(ctx context.Context, n int) error
}
