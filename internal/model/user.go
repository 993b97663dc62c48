package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 string     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name               string     `gorm:"type:varchar(200);not null" json:"name"`
	TC                 bool       `gorm:"not null;default:false" json:"tc"` // terms and conditions accepted
	PasswordHash       string     `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePic         *string    `gorm:"type:text" json:"profile_pic,omitempty"`
	CoverPic           *string    `gorm:"type:text" json:"cover_pic,omitempty"`
	Bio                *string    `gorm:"type:text" json:"bio,omitempty"`
	Location           *string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Work               *string    `gorm:"type:varchar(255)" json:"work,omitempty"`
	Study              *string    `gorm:"type:varchar(255)" json:"study,omitempty"`
	RelationshipStatus string     `gorm:"type:varchar(20);default:'single'" json:"relationship_status"`
	DateOfBirth        *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	IsAdmin            bool       `gorm:"default:false" json:"is_admin"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Relationship status constants
const (
	RelationshipSingle         = "single"
	RelationshipMarried        = "married"
	RelationshipEngaged        = "engaged"
	RelationshipInRelationship = "in_relationship"
	RelationshipDivorced       = "divorced"
	RelationshipSeparated      = "separated"
)

// ValidRelationshipStatus reports whether s is one of the allowed values.
func ValidRelationshipStatus(s string) bool {
	switch s {
	case RelationshipSingle, RelationshipMarried, RelationshipEngaged,
		RelationshipInRelationship, RelationshipDivorced, RelationshipSeparated:
		return true
	}
	return false
}
