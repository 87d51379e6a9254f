package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressRecord_Validate(t *testing.T) {
	assert.ErrorIs(t, AddressRecord{Name: "  "}.Validate(), ErrNameRequired)
	assert.NoError(t, AddressRecord{Name: "Acme Legal"}.Validate())
}

func TestAddressRecord_Label(t *testing.T) {
	assert.Equal(t, "Jane Roe", AddressRecord{Name: "Jane Roe"}.Label())
	assert.Equal(t, "Jane Roe | Roe LLP", AddressRecord{Name: "Jane Roe", Company: "Roe LLP"}.Label())
}

func TestBillerProfile_Merge(t *testing.T) {
	p := BillerProfile{Name: "Old", Phone: "555-0100"}
	got := p.Merge(BillerProfile{Name: "New", Email: "a@b.c"})
	assert.Equal(t, BillerProfile{Name: "New", Phone: "555-0100", Email: "a@b.c"}, got)
}
