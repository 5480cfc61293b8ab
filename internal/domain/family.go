package domain

import (
	"time"

	"github.com/google/uuid"
)

// Family is the public side of a beneficiary household. Everything sensitive
// (real name, exact location, story) lives in the paired SecureFamilyData
// row, joined only by FamilyCode.
type Family struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FamilyCode         string             `gorm:"uniqueIndex;not null;column:family_code" json:"family_code"`
	Region             string             `gorm:"not null;column:region" json:"region"`
	PriorityLevel      PriorityLevel      `gorm:"not null;default:'MEDIUM';column:priority_level" json:"priority_level"`
	VerificationStatus VerificationStatus `gorm:"not null;default:'PENDING';column:verification_status" json:"verification_status"`
	IsActive           bool               `gorm:"not null;default:true;column:is_active" json:"is_active"`
	UserID             uuid.UUID          `gorm:"index;not null;column:user_id" json:"user_id"`
	User               *User              `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	VerifiedByAdminID  *uuid.UUID         `gorm:"type:uuid;column:verified_by_admin_id" json:"verified_by_admin_id,omitempty"`

	Needs     []FamilyNeed       `gorm:"foreignKey:FamilyCode;references:FamilyCode" json:"needs,omitempty"`
	Donations []ExternalDonation `gorm:"foreignKey:FamilyCode;references:FamilyCode" json:"donations,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Family) TableName() string { return "family" }
