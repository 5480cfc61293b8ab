package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecureFamilyData holds the identifying fields of a family. It is created in
// the same transaction as its Family row and never independently; reads are
// gated to administrators by the transport layer.
type SecureFamilyData struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FamilyCode    string    `gorm:"uniqueIndex;not null;column:family_code" json:"family_code"`
	RealName      string    `gorm:"not null;column:real_name" json:"real_name"`
	ExactLocation string    `gorm:"not null;column:exact_location" json:"exact_location"`
	Story         string    `gorm:"not null;column:story" json:"story"`

	// EncryptedData duplicates the three fields as a JSON blob, kept for
	// parity with the existing schema.
	EncryptedData string `gorm:"column:encrypted_data" json:"-"`

	VerifiedBy *uuid.UUID `gorm:"type:uuid;column:verified_by" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SecureFamilyData) TableName() string { return "secure_family_data" }
