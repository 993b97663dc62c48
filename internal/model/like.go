package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is unique per (user, post); the composite index is the consistency
// boundary for concurrent duplicate likes.
type Like struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_user_post_like,unique" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;index:idx_user_post_like,unique" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to generate UUID
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}
