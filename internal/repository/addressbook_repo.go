package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/andy/depobill/internal/domain"
)

// AddressBookRepo stores the whole address book as one JSON object
// under KeyAddressBook, mapping client name to record.
type AddressBookRepo struct {
	kv     KVStore
	logger *log.Logger
}

// NewAddressBookRepo creates a new AddressBookRepo
func NewAddressBookRepo(kv KVStore, logger *log.Logger) *AddressBookRepo {
	return &AddressBookRepo{kv: kv, logger: logger}
}

// Upsert inserts or fully overwrites the record stored under rec.Name.
// The name is the key exactly as given, the same as Lookup and DeleteMany.
func (r *AddressBookRepo) Upsert(ctx context.Context, rec domain.AddressRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	book := r.load(ctx)
	book[rec.Name] = rec
	return r.store(ctx, book)
}

// Lookup retrieves the record saved under name
func (r *AddressBookRepo) Lookup(ctx context.Context, name string) (*domain.AddressRecord, error) {
	book := r.load(ctx)
	rec, ok := book[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, name)
	}
	return &rec, nil
}

// List returns every record sorted by name
func (r *AddressBookRepo) List(ctx context.Context) ([]domain.AddressRecord, error) {
	book := r.load(ctx)

	records := make([]domain.AddressRecord, 0, len(book))
	for _, rec := range book {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

// DeleteMany removes the named records and returns how many existed
func (r *AddressBookRepo) DeleteMany(ctx context.Context, names []string) (int, error) {
	book := r.load(ctx)

	removed := 0
	for _, name := range names {
		if _, ok := book[name]; ok {
			delete(book, name)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	if err := r.store(ctx, book); err != nil {
		return 0, err
	}
	return removed, nil
}

// load reads the book. Anything unreadable yields an empty book.
func (r *AddressBookRepo) load(ctx context.Context) map[string]domain.AddressRecord {
	book := make(map[string]domain.AddressRecord)

	raw, ok, err := r.kv.Get(ctx, KeyAddressBook)
	if err != nil {
		r.logger.Warn("address book unreadable, starting empty", "err", err)
		return book
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return book
	}

	if err := json.Unmarshal([]byte(raw), &book); err != nil {
		r.logger.Warn("address book payload corrupt, starting empty", "err", err)
		return make(map[string]domain.AddressRecord)
	}
	// A stored "null" decodes to a nil map
	if book == nil {
		book = make(map[string]domain.AddressRecord)
	}

	// Records saved by older versions may lack the name field
	for name, rec := range book {
		if rec.Name == "" {
			rec.Name = name
			book[name] = rec
		}
	}
	return book
}

func (r *AddressBookRepo) store(ctx context.Context, book map[string]domain.AddressRecord) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode address book: %w", err)
	}
	if err := r.kv.Set(ctx, KeyAddressBook, string(data)); err != nil {
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}
