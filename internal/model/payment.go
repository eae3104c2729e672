package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatusConfirmed is the only status ever persisted; a payment row
// exists only after on-chain verification succeeded.
var PaymentStatusConfirmed = "confirmed"

// Payment records a verified on-chain transfer. The transaction signature is
// the natural idempotency key: the unique index guarantees at most one row
// per signature even under concurrent verification requests.
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Signature      string `gorm:"type:text;uniqueIndex;not null" json:"signature"`
	AmountLamports int64  `gorm:"not null" json:"amount_lamports"`
	Sender         string `gorm:"type:text" json:"sender"`
	Recipient      string `gorm:"type:text" json:"recipient"`
	Status         string `gorm:"type:text" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
