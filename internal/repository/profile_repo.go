package repository

import (
	"context"
	"fmt"

	"github.com/andy/depobill/internal/domain"
)

// ProfileRepo stores each biller field under its own key
type ProfileRepo struct {
	kv KVStore
}

// NewProfileRepo creates a new ProfileRepo
func NewProfileRepo(kv KVStore) *ProfileRepo {
	return &ProfileRepo{kv: kv}
}

// Get retrieves the profile. Missing fields are empty.
func (r *ProfileRepo) Get(ctx context.Context) (domain.BillerProfile, error) {
	var p domain.BillerProfile
	for _, f := range r.fields(&p) {
		v, _, err := r.kv.Get(ctx, f.key)
		if err != nil {
			return domain.BillerProfile{}, fmt.Errorf("failed to get profile: %w", err)
		}
		*f.value = v
	}
	return p, nil
}

// Save overwrites every profile field
func (r *ProfileRepo) Save(ctx context.Context, p domain.BillerProfile) error {
	for _, f := range r.fields(&p) {
		if err := r.kv.Set(ctx, f.key, *f.value); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}
	return nil
}

type profileField struct {
	key   string
	value *string
}

func (r *ProfileRepo) fields(p *domain.BillerProfile) []profileField {
	return []profileField{
		{KeyName, &p.Name},
		{KeyAddress, &p.Address},
		{KeyPhone, &p.Phone},
		{KeyEmail, &p.Email},
		{KeyPayableTo, &p.PayableToName},
	}
}
