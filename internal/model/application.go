package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status values
var (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
)

// ValidApplicationStatus reports whether s is one of the allowed status values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusInterviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// JobApplication represents a job application record. A user may apply to a
// given job at most once, enforced by the composite unique index.
type JobApplication struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	JobID uint `gorm:"not null;uniqueIndex:idx_applications_user_job" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"job"`

	Status string `gorm:"type:text;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
