package models

import "time"

// Thread is a post or a reply. A nil ParentID marks a top-level post;
// replies carry their parent's ID and must also appear in that parent's
// Children list. The linkage is maintained by the service layer on every
// comment insert, not by a database constraint, so a failure between the
// two writes can leave a reply reachable only by direct lookup.
type Thread struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	// Children is the ordered list of direct reply IDs.
	Children    IDList     `gorm:"serializer:json" json:"children"`
	CommunityID *uint      `gorm:"index" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	// Replies is the populated expansion of Children; not persisted.
	Replies []*Thread `gorm:"-" json:"replies,omitempty"`
	// Truncated marks a node whose replies exist but were not expanded
	// because the traversal depth limit was reached.
	Truncated bool      `gorm:"-" json:"truncated,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Thread) TableName() string {
	return "threads"
}

// IsTopLevel reports whether the thread is a top-level post.
func (t *Thread) IsTopLevel() bool {
	return t.ParentID == nil
}
