// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents a registered account. Skills are stored lower-cased and
// deduplicated by the resume merge path; the column itself does not enforce it.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text" json:"name"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text" json:"-"`

	Bio           string         `gorm:"type:text" json:"bio"`
	Skills        pq.StringArray `gorm:"type:text[]" json:"skills"`
	LinkedinURL   string         `gorm:"type:text" json:"linkedin_url"`
	WalletAddress string         `gorm:"type:text" json:"wallet_address"`
	// Avatar is stored as an inline data URL.
	Avatar string `gorm:"type:text" json:"avatar"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
