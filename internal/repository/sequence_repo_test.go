package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/domain"
)

func TestSequence_DefaultsToOne(t *testing.T) {
	repo := NewSequenceRepo(NewMemoryKV(), testLogger())
	assert.Equal(t, 1, repo.Current(context.Background()))
}

func TestSequence_CorruptValues(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"abc", "0", "-7", ""} {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, KeyLastInvoiceNumber, raw))
		assert.Equal(t, 1, NewSequenceRepo(kv, testLogger()).Current(ctx), "raw %q", raw)
	}
}

func TestSequence_SetAndReadNeverIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewSequenceRepo(NewMemoryKV(), testLogger())

	require.NoError(t, repo.Set(ctx, 42))
	assert.Equal(t, 42, repo.Current(ctx))
	assert.Equal(t, 42, repo.Current(ctx))

	assert.ErrorIs(t, repo.Set(ctx, 0), ErrInvalidInvoiceNumber)
	assert.Equal(t, 42, repo.Current(ctx))

	assert.Equal(t, 1, NewSequenceRepo(failingKV{}, testLogger()).Current(ctx))
}

func TestProfile_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewProfileRepo(kv)

	p, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BillerProfile{}, p)

	want := domain.BillerProfile{
		Name:          "Pat Reporter",
		Address:       "9 Court Sq\nSpringfield",
		Phone:         "555-0199",
		Email:         "pat@example.test",
		PayableToName: "Pat Reporter CSR",
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	v, ok, _ := kv.Get(ctx, KeyPayableTo)
	assert.True(t, ok)
	assert.Equal(t, "Pat Reporter CSR", v)

	_, err = NewProfileRepo(failingKV{}).Get(ctx)
	assert.Error(t, err)
}

func TestMemoryKV_Delete(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Set(ctx, "b", "2"))
	require.NoError(t, kv.Delete(ctx, "a", "zzz"))

	_, ok, _ := kv.Get(ctx, "a")
	assert.False(t, ok)
	v, ok, _ := kv.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}
