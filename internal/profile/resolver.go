package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doctqr-server/internal/models"
)

// maxMintAttempts bounds how often Publish retries after losing an insert to
// a unique index, either on public_id (mint a fresh token) or on user_id
// (re-read and update the winner's row).
const maxMintAttempts = 3

// bloodTypes is the accepted set for the bloodType field. Matches the
// selector the web client offers; empty means unspecified.
var bloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// ClinicalData is the complete set of clinical fields for one publish call.
// Partial updates are not supported: every call replaces the whole document.
type ClinicalData struct {
	BirthDate         string                    `json:"birthDate"`
	Language          string                    `json:"language"`
	IsOrganDonor      bool                      `json:"isOrganDonor"`
	IsPregnant        *bool                     `json:"isPregnant"`
	Medications       []string                  `json:"medications"`
	Allergies         []string                  `json:"allergies"`
	Conditions        []string                  `json:"conditions"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	Height            float64                   `json:"height"`
	Weight            float64                   `json:"weight"`
	BloodType         string                    `json:"bloodType"`
	AdditionalNotes   string                    `json:"additionalNotes"`
}

// Validate rejects malformed payloads before anything touches the store.
func (d *ClinicalData) Validate() error {
	if d.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", d.BirthDate); err != nil {
			return fmt.Errorf("%w: birthDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if d.Height < 0 {
		return fmt.Errorf("%w: height must not be negative", ErrInvalidInput)
	}
	if d.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidInput)
	}
	if d.BloodType != "" && !bloodTypes[d.BloodType] {
		return fmt.Errorf("%w: unknown blood type %q", ErrInvalidInput, d.BloodType)
	}
	for i, c := range d.EmergencyContacts {
		if c.Name == "" {
			return fmt.Errorf("%w: emergencyContacts[%d].name is required", ErrInvalidInput, i)
		}
		if c.Phone == "" {
			return fmt.Errorf("%w: emergencyContacts[%d].phone is required", ErrInvalidInput, i)
		}
	}
	return nil
}

// apply copies the clinical fields onto a profile row. List fields are
// written as empty slices, never nil, so views and JSON marshalling need no
// null checks.
func (d *ClinicalData) apply(p *models.MedicalProfile) {
	p.BirthDate = d.BirthDate
	p.Language = d.Language
	p.IsOrganDonor = d.IsOrganDonor
	p.IsPregnant = d.IsPregnant
	p.Medications = emptyIfNil(d.Medications)
	p.Allergies = emptyIfNil(d.Allergies)
	p.Conditions = emptyIfNil(d.Conditions)
	p.EmergencyContacts = emptyIfNil(d.EmergencyContacts)
	p.Height = d.Height
	p.Weight = d.Weight
	p.BloodType = d.BloodType
	p.AdditionalNotes = d.AdditionalNotes
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ProfileView is the read-only projection returned to unauthenticated
// viewers: clinical fields plus the owner's display name. It never carries
// the account ID, the email or any credential material.
type ProfileView struct {
	FirstName         string                    `json:"firstName"`
	LastName          string                    `json:"lastName"`
	BirthDate         string                    `json:"birthDate,omitempty"`
	Language          string                    `json:"language,omitempty"`
	IsOrganDonor      bool                      `json:"isOrganDonor"`
	IsPregnant        *bool                     `json:"isPregnant,omitempty"`
	Medications       []string                  `json:"medications"`
	Allergies         []string                  `json:"allergies"`
	Conditions        []string                  `json:"conditions"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	Height            float64                   `json:"height,omitempty"`
	Weight            float64                   `json:"weight,omitempty"`
	BloodType         string                    `json:"bloodType,omitempty"`
	AdditionalNotes   string                    `json:"additionalNotes,omitempty"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

// Resolver mediates the public-identifier lifecycle. It is the only
// component that mints a PublicID and the only one that translates a
// PublicID back into clinical data.
type Resolver struct {
	store    Store
	accounts AccountReader
}

// NewResolver creates a new Resolver.
func NewResolver(store Store, accounts AccountReader) *Resolver {
	return &Resolver{store: store, accounts: accounts}
}

// Publish creates or replaces the medical profile for an account and returns
// its public identifier. The accountID must come from a verified session -
// the resolver performs no credential check of its own. On first creation a
// fresh token is minted; on update the existing token is preserved, so a QR
// code printed before the edit keeps working.
func (r *Resolver) Publish(ctx context.Context, accountID string, data ClinicalData) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if err := data.Validate(); err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		existing, err := r.store.FindByAccount(ctx, accountID)
		switch {
		case err == nil:
			data.apply(existing)
			if err := r.store.Upsert(ctx, existing); err != nil {
				return "", err
			}
			return existing.PublicID, nil

		case errors.Is(err, ErrNotFound):
			publicID, err := NewPublicID()
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			p := &models.MedicalProfile{UserID: accountID, PublicID: publicID}
			data.apply(p)

			err = r.store.Upsert(ctx, p)
			switch {
			case err == nil:
				return publicID, nil
			case errors.Is(err, ErrPublicIDTaken):
				// Token collision. Loop and mint a fresh one.
			case errors.Is(err, ErrAccountTaken):
				// Lost a concurrent first-time publish for this account.
				// Loop: the re-read finds the winner's row and updates it.
			default:
				return "", err
			}

		default:
			return "", err
		}
	}
	return "", fmt.Errorf("%w: could not store profile after %d attempts", ErrUnavailable, maxMintAttempts)
}

// Resolve translates a caller-supplied public token into the read-only
// projection. Unknown, mistyped and empty tokens all yield the same
// ErrNotFound with no hint of how close the token was to a valid one.
func (r *Resolver) Resolve(ctx context.Context, publicID string) (*ProfileView, error) {
	if publicID == "" {
		return nil, ErrNotFound
	}
	p, err := r.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	owner, err := r.accounts.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Orphaned profile; present it the same as an unknown token.
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ProfileView{
		FirstName:         owner.FirstName,
		LastName:          owner.LastName,
		BirthDate:         p.BirthDate,
		Language:          p.Language,
		IsOrganDonor:      p.IsOrganDonor,
		IsPregnant:        p.IsPregnant,
		Medications:       emptyIfNil(p.Medications),
		Allergies:         emptyIfNil(p.Allergies),
		Conditions:        emptyIfNil(p.Conditions),
		EmergencyContacts: emptyIfNil(p.EmergencyContacts),
		Height:            p.Height,
		Weight:            p.Weight,
		BloodType:         p.BloodType,
		AdditionalNotes:   p.AdditionalNotes,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

// ProfileFor returns the account's own profile document, or ErrNotFound when
// nothing has been published yet. Used by the authenticated edit screen.
func (r *Resolver) ProfileFor(ctx context.Context, accountID string) (*models.MedicalProfile, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	return r.store.FindByAccount(ctx, accountID)
}
