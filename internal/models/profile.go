package models

import "time"

// Profile stores optional personal details for a user. Exactly one profile
// exists per user; it is provisioned by ProfileService when the account is
// created and is never created explicitly by handlers.
type Profile struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Photo       string     `json:"photo,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
