package models

// AccessToken is an opaque bearer credential. Only a SHA-256 hash of the
// secret half is stored; the plaintext secret leaves the server exactly once,
// embedded in the "<id>|<secret>" string returned on issue.
type AccessToken struct {
	Base
	MemberID  uint   `gorm:"not null;index" json:"member_id"`
	Name      string `gorm:"default:'api-token'" json:"name"`
	TokenHash string `gorm:"not null" json:"-"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}
