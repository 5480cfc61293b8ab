package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExternalDonation records a contribution made on a third-party platform.
// Rows are append-only; IsVerified is the single mutable field and only an
// administrator flips it. Externally reported totals must sum verified
// entries only.
type ExternalDonation struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FamilyCode   string     `gorm:"index;not null;column:family_code" json:"family_code"`
	Platform     string     `gorm:"not null;column:platform" json:"platform"`
	ExternalLink string     `gorm:"column:external_link" json:"external_link"`
	DonorName    string     `gorm:"column:donor_name" json:"donor_name"`
	Amount       float64    `gorm:"not null;column:amount" json:"amount"`
	Currency     string     `gorm:"not null;default:'USD';column:currency" json:"currency"`
	DonationDate time.Time  `gorm:"not null;column:donation_date" json:"donation_date"`
	DonorID      *uuid.UUID `gorm:"type:uuid;index;column:donor_id" json:"donor_id,omitempty"`
	IsVerified   bool       `gorm:"not null;default:false;column:is_verified" json:"is_verified"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ExternalDonation) TableName() string { return "external_donation" }
