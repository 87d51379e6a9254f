package domain

// BillerProfile describes who issues the invoice. There is only ever one.
type BillerProfile struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	PayableToName string
}

// Merge returns p with every non-empty field of other written over it
func (p BillerProfile) Merge(other BillerProfile) BillerProfile {
	if other.Name != "" {
		p.Name = other.Name
	}
	if other.Address != "" {
		p.Address = other.Address
	}
	if other.Phone != "" {
		p.Phone = other.Phone
	}
	if other.Email != "" {
		p.Email = other.Email
	}
	if other.PayableToName != "" {
		p.PayableToName = other.PayableToName
	}
	return p
}
