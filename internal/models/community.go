package models

import "time"

// Community represents a named space that threads and users can be
// associated with. The association is loose: nothing cascades through it.
type Community struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Slug            string    `gorm:"size:24;not null;uniqueIndex" json:"slug"`
	Image           string    `json:"image"`
	CreatedByUserID *uint     `json:"created_by_user_id"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
