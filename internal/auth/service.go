package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/chiawei/notebox/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveMember     = errors.New("member is inactive")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string // Optional
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token  string         `json:"token"`
	Member *models.Member `json:"member"`
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	// Check if member exists; the unique index on email is the backstop
	// against a concurrent registration slipping through this check
	var existing models.Member
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	member := models.Member{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := s.IssueToken(ctx, &member)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, Member: &member}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Uniform with the wrong-password case below
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !member.IsActive {
		return nil, ErrInactiveMember
	}

	if !CheckPassword(input.Password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, &member)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, Member: &member}, nil
}

// IssueToken revokes every token the member holds and creates exactly one
// replacement, enforcing single-active-session semantics. If the create half
// fails after the delete, the member simply has to authenticate again.
func (s *Service) IssueToken(ctx context.Context, member *models.Member) (string, error) {
	secret := uuid.NewString()
	token := models.AccessToken{
		MemberID:  member.ID,
		Name:      "api-token",
		TokenHash: hashTokenSecret(secret),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", member.ID).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return "", err
	}

	return formatToken(token.ID, secret), nil
}

// ResolveToken maps a raw bearer string back to its member. Unknown ids,
// hash mismatches and missing members all come back as ErrInvalidToken so
// the caller cannot learn which part of the token was wrong.
func (s *Service) ResolveToken(ctx context.Context, raw string) (*models.Member, error) {
	id, secret, err := parseToken(raw)
	if err != nil {
		return nil, err
	}

	var token models.AccessToken
	if err := s.db.WithContext(ctx).First(&token, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(hashTokenSecret(secret)), []byte(token.TokenHash)) != 1 {
		return nil, ErrInvalidToken
	}

	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, token.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return &member, nil
}

// Refresh rotates the member's token: the presented one is already resolved
// by the caller, issuing a new one deletes it.
func (s *Service) Refresh(ctx context.Context, member *models.Member) (string, error) {
	return s.IssueToken(ctx, member)
}

func (s *Service) Logout(ctx context.Context, member *models.Member) error {
	return s.db.WithContext(ctx).
		Where("member_id = ?", member.ID).
		Delete(&models.AccessToken{}).Error
}

func (s *Service) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}
