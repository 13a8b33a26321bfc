package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/api/middleware"
	"github.com/chiawei/notebox/internal/auth"
	"github.com/chiawei/notebox/internal/database/models"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func memberToDTO(member *models.Member) dto.MemberDTO {
	return dto.MemberDTO{
		ID:       member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Phone:    member.Phone,
		IsActive: member.IsActive,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid request body",
			Error:   dto.TagValidationFailed,
		})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: "Validation failed",
			Error:   dto.TagValidationFailed,
			Details: details,
		})
		return
	}

	resp, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{
				Message: "Email is already registered",
				Error:   dto.TagEmailExists,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Registration failed",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token:  resp.Token,
		Member: memberToDTO(resp.Member),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid request body",
			Error:   dto.TagValidationFailed,
		})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: "Validation failed",
			Error:   dto.TagValidationFailed,
			Details: details,
		})
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Unknown email and wrong password are deliberately the same
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
				Message: "Invalid credentials",
				Error:   dto.TagInvalidCredentials,
			})
		case errors.Is(err, auth.ErrInactiveMember):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{
				Message: "Account is inactive",
				Error:   dto.TagInactiveMember,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Login failed",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:  resp.Token,
		Member: memberToDTO(resp.Member),
	})
}

// Refresh rotates the caller's token: the presented token stops resolving,
// the returned one takes its place.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	member := middleware.GetMember(r.Context())
	if member == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Token is invalid or revoked",
			Error:   dto.TagInvalidToken,
		})
		return
	}

	token, err := h.authService.Refresh(r.Context(), member)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Token refresh failed",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	member := middleware.GetMember(r.Context())
	if member == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Token is invalid or revoked",
			Error:   dto.TagInvalidToken,
		})
		return
	}

	if err := h.authService.Logout(r.Context(), member); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Logout failed",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	member := middleware.GetMember(r.Context())
	if member == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Token is invalid or revoked",
			Error:   dto.TagInvalidToken,
		})
		return
	}

	writeJSON(w, http.StatusOK, memberToDTO(member))
}
