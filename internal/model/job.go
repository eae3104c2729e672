package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job status values
var (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// EditableJobInfo is the part of a job post that the owner can edit.
type EditableJobInfo struct {
	Title           string `gorm:"type:text" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	CompanyName     string `gorm:"type:text" json:"company_name"`
	Role            string `gorm:"type:text" json:"role"`
	Industry        string `gorm:"type:text" json:"industry"`
	ExperienceLevel string `gorm:"type:text" json:"experience_level"`
	CompanyType     string `gorm:"type:text" json:"company_type"`
	// Skills and Tags are JSON-encoded arrays of strings.
	Skills   string `gorm:"type:text" json:"skills"`
	Tags     string `gorm:"type:text" json:"tags"`
	Budget   string `gorm:"type:text" json:"budget"`
	WorkMode string `gorm:"type:text" json:"work_mode"`
	Location string `gorm:"type:text" json:"location"`
	Status   string `gorm:"type:text;default:'active'" json:"status"`
}

// Job is gorm model for store job post data in DB
type Job struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	EditableJobInfo

	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Applications []JobApplication `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// SkillList decodes the serialized skill column.
func (j *Job) SkillList() []string {
	return DecodeStringList(j.Skills)
}

// TagList decodes the serialized tag column.
func (j *Job) TagList() []string {
	return DecodeStringList(j.Tags)
}

// DecodeStringList parses a JSON-encoded string array. Malformed or empty
// input degrades to an empty list rather than erroring, so a corrupted row
// never breaks a read path.
func DecodeStringList(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

// EncodeStringList serializes a string slice for storage. A nil slice encodes
// as an empty JSON array so the column always holds valid JSON.
func EncodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
