package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRequest is a directed edge from one user to another. A request is
// never both accepted and rejected.
type FriendRequest struct {
	ID         string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FromUserID string    `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID   string    `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	Rejected   bool      `gorm:"default:false" json:"rejected"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnDelete:CASCADE" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnDelete:CASCADE" json:"to_user,omitempty"`
}

// BeforeCreate hook to generate UUID
func (fr *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if fr.ID == "" {
		fr.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (FriendRequest) TableName() string {
	return "friend_requests"
}
