package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// SequenceRepo stores the next invoice number under KeyLastInvoiceNumber.
// Reading never advances it.
type SequenceRepo struct {
	kv     KVStore
	logger *log.Logger
}

// NewSequenceRepo creates a new SequenceRepo
func NewSequenceRepo(kv KVStore, logger *log.Logger) *SequenceRepo {
	return &SequenceRepo{kv: kv, logger: logger}
}

// Current returns the stored number, or 1 when it is missing or unusable
func (r *SequenceRepo) Current(ctx context.Context) int {
	raw, ok, err := r.kv.Get(ctx, KeyLastInvoiceNumber)
	if err != nil {
		r.logger.Warn("invoice number unreadable, using 1", "err", err)
		return 1
	}
	if !ok {
		return 1
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		r.logger.Warn("invoice number corrupt, using 1", "value", raw)
		return 1
	}
	return n
}

// Set persists n as the next invoice number
func (r *SequenceRepo) Set(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidInvoiceNumber, n)
	}
	if err := r.kv.Set(ctx, KeyLastInvoiceNumber, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("failed to save invoice number: %w", err)
	}
	return nil
}
