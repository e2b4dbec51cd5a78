// Package models contains data structures for the application's domain models.
package models

import "time"

// IDList is an ordered sequence of entity IDs stored as a JSON column.
// Order is significant: it reflects insertion order, and duplicates are
// possible since appends are plain list pushes.
type IDList []uint

// User represents a forum member. AuthID is the identifier issued by the
// external auth provider; every public operation keys users by it, never
// by the surrogate primary key.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthID   string `gorm:"size:64;not null;uniqueIndex" json:"auth_id"`
	Username string `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Name     string `gorm:"size:60" json:"name"`
	Bio      string `gorm:"type:text" json:"bio"`
	Image    string `json:"image"`
	// Onboarded flips to true on the first successful profile save and
	// stays true afterwards.
	Onboarded bool `gorm:"not null;default:false" json:"onboarded"`
	// ThreadIDs is the ordered list of threads authored by this user.
	ThreadIDs IDList `gorm:"serializer:json" json:"thread_ids"`
	// CommunityIDs references communities the user belongs to.
	CommunityIDs IDList `gorm:"serializer:json" json:"community_ids"`
	// Communities is the resolved expansion of CommunityIDs; not persisted.
	Communities []*Community `gorm:"-" json:"communities,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
