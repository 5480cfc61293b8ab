package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Admin mirrors the account email and password hash because admin lookups go
// by email rather than user id.
type Admin struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string                      `gorm:"not null;column:password" json:"-"`
	Name        string                      `gorm:"not null;column:name" json:"name"`
	Permissions datatypes.JSONSlice[string] `gorm:"column:permissions" json:"permissions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Admin) TableName() string { return "admin" }
