package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/auth"
	"github.com/chiawei/notebox/internal/database/models"
)

type contextKey string

const (
	MemberIDKey contextKey = "member_id"
	MemberKey   contextKey = "member"
)

// Auth resolves the bearer token on every protected request and attaches the
// member to the request context. The three 401 outcomes (missing, malformed,
// invalid) carry distinct tags for diagnostics but identical caller behavior.
func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "No token provided", dto.TagTokenMissing)
				return
			}
			raw := strings.TrimPrefix(authHeader, "Bearer ")

			member, err := tokens.ResolveToken(r.Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrMalformedToken):
					writeAuthError(w, http.StatusUnauthorized, "Token format is invalid", dto.TagInvalidTokenFormat)
				case errors.Is(err, auth.ErrInvalidToken):
					writeAuthError(w, http.StatusUnauthorized, "Token is invalid or revoked", dto.TagInvalidToken)
				default:
					writeAuthError(w, http.StatusInternalServerError, "Authentication failed", dto.TagInternalError)
				}
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, MemberIDKey, member.ID)
			ctx = context.WithValue(ctx, MemberKey, member)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message, tag string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Message: message, Error: tag})
}

// Helper functions to extract values from context
func GetMemberID(ctx context.Context) uint {
	if id, ok := ctx.Value(MemberIDKey).(uint); ok {
		return id
	}
	return 0
}

func GetMember(ctx context.Context) *models.Member {
	if member, ok := ctx.Value(MemberKey).(*models.Member); ok {
		return member
	}
	return nil
}
