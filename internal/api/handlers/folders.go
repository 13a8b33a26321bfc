package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/api/middleware"
	"github.com/chiawei/notebox/internal/database/models"
	"github.com/chiawei/notebox/internal/folders"
)

type FolderHandler struct {
	folderService *folders.Service
}

func NewFolderHandler(folderService *folders.Service) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

func folderToResponse(folder *models.NoteFolder) dto.FolderResponse {
	return dto.FolderResponse{
		ID:          folder.ID,
		ParentID:    folder.ParentID,
		Name:        folder.Name,
		Description: folder.Description,
		SortOrder:   folder.SortOrder,
		IsActive:    folder.IsActive,
		CreatedAt:   folder.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   folder.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /folders
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	tree, err := h.folderService.List(r.Context(), memberID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to list folders",
			Error:   dto.TagInternalError,
		})
		return
	}

	// Empty tree serializes as [] rather than null
	if tree == nil {
		tree = []folders.FolderNode{}
	}
	writeJSON(w, http.StatusOK, tree)
}

// Create handles POST /folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	var req dto.CreateFolderRequest
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

	folder, err := h.folderService.Create(r.Context(), memberID, folders.CreateFolderInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})

	if err != nil {
		switch {
		case errors.Is(err, folders.ErrParentNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Parent folder not found",
				Error:   dto.TagParentNotFound,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Failed to create folder",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, folderToResponse(folder))
}

// Update handles PUT /folders/{id}
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Message: "Folder not found",
			Error:   dto.TagFolderNotFound,
		})
		return
	}

	var req dto.UpdateFolderRequest
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

	input := folders.UpdateFolderInput{Name: req.Name}
	if req.ParentID != nil {
		input.SetParent = true
		if *req.ParentID != 0 {
			input.ParentID = req.ParentID
		}
	}

	folder, err := h.folderService.Update(r.Context(), memberID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, folders.ErrFolderNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Folder not found",
				Error:   dto.TagFolderNotFound,
			})
		case errors.Is(err, folders.ErrParentNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Parent folder not found",
				Error:   dto.TagParentNotFound,
			})
		case errors.Is(err, folders.ErrFolderCycle):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Message: "Folder cannot be moved under its own descendant",
				Error:   dto.TagFolderCycle,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Failed to update folder",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, folderToResponse(folder))
}

// Delete handles DELETE /folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Message: "Folder not found",
			Error:   dto.TagFolderNotFound,
		})
		return
	}

	if err := h.folderService.Delete(r.Context(), memberID, id); err != nil {
		switch {
		case errors.Is(err, folders.ErrFolderNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Folder not found",
				Error:   dto.TagFolderNotFound,
			})
		case errors.Is(err, folders.ErrHasChildren):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Message: "Folder still contains child folders",
				Error:   dto.TagHasChildren,
			})
		case errors.Is(err, folders.ErrHasNotes):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Message: "Folder still contains notes",
				Error:   dto.TagHasNotes,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Failed to delete folder",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Folder deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
