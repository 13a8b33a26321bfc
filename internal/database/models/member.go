package models

type Member struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Phone        string  `json:"phone,omitempty"`
	Birthday     *string `json:"birthday,omitempty"`
	Note         string  `json:"note,omitempty"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	// Relationships
	Folders []NoteFolder  `gorm:"foreignKey:MemberID" json:"-"`
	Notes   []Note        `gorm:"foreignKey:MemberID" json:"-"`
	Tokens  []AccessToken `gorm:"foreignKey:MemberID" json:"-"`
}

func (Member) TableName() string {
	return "members"
}
