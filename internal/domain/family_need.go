package domain

import (
	"time"

	"github.com/google/uuid"
)

// FamilyNeed is a costed request from a family. IsFulfilled moves
// false -> true exactly once; there is no un-fulfillment path.
type FamilyNeed struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FamilyCode    string        `gorm:"index;not null;column:family_code" json:"family_code"`
	Category      string        `gorm:"not null;column:category" json:"category"`
	Title         string        `gorm:"not null;column:title" json:"title"`
	Description   string        `gorm:"column:description" json:"description"`
	EstimatedCost *float64      `gorm:"column:estimated_cost" json:"estimated_cost,omitempty"`
	Priority      PriorityLevel `gorm:"not null;default:'MEDIUM';column:priority" json:"priority"`
	IsFulfilled   bool          `gorm:"not null;default:false;column:is_fulfilled" json:"is_fulfilled"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FamilyNeed) TableName() string { return "family_need" }
