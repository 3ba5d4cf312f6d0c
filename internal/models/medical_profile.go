package models

import (
	"gorm.io/datatypes"
)

// EmergencyContact is one person to call in an emergency. Stored inside the
// profile's JSON contacts column, never as its own row.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// MedicalProfile is the single medical-information document for one account.
// PublicID is the only credential needed to read it: it is minted once at
// first creation, never regenerated, and a previously printed QR code must
// keep resolving after the owner edits their data. Both UserID and PublicID
// are unique at the storage layer so a double-submit can never produce a
// second document and two profiles can never share a token.
type MedicalProfile struct {
	BaseModel
	UserID   string `gorm:"size:36;not null;uniqueIndex:uniq_medical_profiles_user_id" json:"-"`
	PublicID string `gorm:"size:64;not null;uniqueIndex:uniq_medical_profiles_public_id" json:"publicId"`

	BirthDate    string `gorm:"size:10" json:"birthDate,omitempty"`
	Language     string `gorm:"size:100" json:"language,omitempty"`
	IsOrganDonor bool   `json:"isOrganDonor"`
	// Tri-state: true / false / not applicable (null)
	IsPregnant        *bool                                 `json:"isPregnant,omitempty"`
	Medications       datatypes.JSONSlice[string]           `json:"medications"`
	Allergies         datatypes.JSONSlice[string]           `json:"allergies"`
	Conditions        datatypes.JSONSlice[string]           `json:"conditions"`
	EmergencyContacts datatypes.JSONSlice[EmergencyContact] `json:"emergencyContacts"`
	Height            float64                               `json:"height,omitempty"` // cm
	Weight            float64                               `json:"weight,omitempty"` // kg
	BloodType         string                                `gorm:"size:3" json:"bloodType,omitempty"`
	AdditionalNotes   string                                `gorm:"type:text" json:"additionalNotes,omitempty"`

	// Relation
	User User `gorm:"foreignKey:UserID" json:"-"`
}
