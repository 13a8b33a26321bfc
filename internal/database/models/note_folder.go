package models

// NoteFolder is a node in a member's folder tree. ParentID nil means root.
// Display attributes (arrow path, depth) are computed by the folder service
// from the loaded records, never stored.
type NoteFolder struct {
	Base
	MemberID    uint   `gorm:"not null;index" json:"member_id"`
	ParentID    *uint  `gorm:"index" json:"parent_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Member *Member     `gorm:"foreignKey:MemberID" json:"-"`
	Parent *NoteFolder `gorm:"foreignKey:ParentID" json:"-"`
}

func (NoteFolder) TableName() string {
	return "note_folders"
}
