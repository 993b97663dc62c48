package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friendship is an undirected edge stored as an ordered (user1, user2) pair.
// Lookups always match either orientation.
type Friendship struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	User1ID   string    `gorm:"type:uuid;not null;index" json:"user1_id"`
	User2ID   string    `gorm:"type:uuid;not null;index" json:"user2_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`

	// Relationships
	User1 User `gorm:"foreignKey:User1ID;references:ID;constraint:OnDelete:CASCADE" json:"user1,omitempty"`
	User2 User `gorm:"foreignKey:User2ID;references:ID;constraint:OnDelete:CASCADE" json:"user2,omitempty"`
}

// BeforeCreate hook to generate UUID
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Friendship) TableName() string {
	return "friendships"
}

// OtherUserID returns the side of the friendship that is not userID.
func (f *Friendship) OtherUserID(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}
