package domain

import "strings"

// AddressRecord is one entry in the client address book, keyed by Name
type AddressRecord struct {
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company" yaml:"company"`
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
}

// Validate returns an error if the record has no name
func (r AddressRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// HasAddress returns true if both name and address are filled in
func (r AddressRecord) HasAddress() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Address) != ""
}

// Label returns "Name | Company", or just the name
func (r AddressRecord) Label() string {
	if r.Company != "" {
		return r.Name + " | " + r.Company
	}
	return r.Name
}
