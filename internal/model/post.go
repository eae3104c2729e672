package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a social feed entry.
type Post struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Title   string `gorm:"type:text" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Type    string `gorm:"type:text" json:"type"`
	// Tags is a JSON-encoded array of strings.
	Tags string `gorm:"type:text" json:"tags"`
	// Image is stored as an inline data URL.
	Image string `gorm:"type:text" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TagList decodes the serialized tag column.
func (p *Post) TagList() []string {
	return DecodeStringList(p.Tags)
}

// Comment references a Post and its author.
type Comment struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	PostID uint `gorm:"not null;index" json:"post_id"`
	Post   Post `gorm:"foreignKey:PostID;references:ID" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostLike is a (post, user) pair, unique per pair.
type PostLike struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	PostID uint `gorm:"not null;uniqueIndex:idx_post_likes_post_user" json:"post_id"`
	Post   Post `gorm:"foreignKey:PostID;references:ID" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
