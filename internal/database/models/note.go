package models

// Note belongs to a member and optionally to one of the member's folders.
// FolderID nil means unfiled.
type Note struct {
	Base
	MemberID uint   `gorm:"not null;index" json:"member_id"`
	FolderID *uint  `gorm:"index" json:"folder_id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Member *Member     `gorm:"foreignKey:MemberID" json:"-"`
	Folder *NoteFolder `gorm:"foreignKey:FolderID" json:"-"`
}

func (Note) TableName() string {
	return "notes"
}
