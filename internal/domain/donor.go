package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Donor struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User    *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name    string    `gorm:"not null;column:name" json:"name"`
	Country string    `gorm:"not null;column:country" json:"country"`

	// Region codes the donor wants to support and family codes the donor
	// bookmarked. FavoriteFamilies keeps insertion order and holds no
	// duplicates.
	PreferredRegions datatypes.JSONSlice[string] `gorm:"column:preferred_regions" json:"preferred_regions"`
	FavoriteFamilies datatypes.JSONSlice[string] `gorm:"column:favorite_families" json:"favorite_families"`

	JoinedAt time.Time `gorm:"not null;default:now();column:joined_at" json:"joined_at"`
}

func (Donor) TableName() string { return "donor" }
