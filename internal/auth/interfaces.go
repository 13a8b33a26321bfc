package auth

import (
	"context"

	"github.com/chiawei/notebox/internal/database/models"
)

// Authenticator defines the interface for member authentication operations.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	GetMemberByID(ctx context.Context, id uint) (*models.Member, error)
}

// TokenService defines the interface for bearer token operations.
type TokenService interface {
	IssueToken(ctx context.Context, member *models.Member) (string, error)
	ResolveToken(ctx context.Context, raw string) (*models.Member, error)
	Refresh(ctx context.Context, member *models.Member) (string, error)
	Logout(ctx context.Context, member *models.Member) error
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*Service)(nil)
)
