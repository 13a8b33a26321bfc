package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/api/middleware"
	"github.com/chiawei/notebox/internal/api/validation"
	"github.com/chiawei/notebox/internal/database/models"
	"github.com/chiawei/notebox/internal/folders"
	"github.com/chiawei/notebox/internal/notes"
)

type NoteHandler struct {
	noteService *notes.Service
}

func NewNoteHandler(noteService *notes.Service) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func noteToResponse(note *models.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		FolderID:  note.FolderID,
		Title:     note.Title,
		Content:   note.Content,
		IsActive:  note.IsActive,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /notes and GET /notes?folder_id=N
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		folderID, err := parseID(raw)
		if err != nil {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Folder not found",
				Error:   dto.TagFolderNotFound,
			})
			return
		}

		group, err := h.noteService.ListByFolder(r.Context(), memberID, folderID)
		if err != nil {
			h.writeListError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
		return
	}

	groups, err := h.noteService.List(r.Context(), memberID)
	if err != nil {
		h.writeListError(w, err)
		return
	}

	if groups == nil {
		groups = []notes.NoteGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *NoteHandler) writeListError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, folders.ErrFolderNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Message: "Folder not found",
			Error:   dto.TagFolderNotFound,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to list notes",
			Error:   dto.TagInternalError,
		})
	}
}

// Get handles GET /notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeNoteNotFound(w)
		return
	}

	note, err := h.noteService.Get(r.Context(), memberID, id)
	if err != nil {
		if errors.Is(err, notes.ErrNoteNotFound) {
			h.writeNoteNotFound(w)
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to load note",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

// Create handles POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	var req dto.CreateNoteRequest
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

	note, err := h.noteService.Create(r.Context(), memberID, notes.CreateNoteInput{
		Title:    req.Title,
		Content:  validation.SanitizeString(req.Content),
		FolderID: normalizeFolderID(req.FolderID),
	})

	if err != nil {
		if errors.Is(err, folders.ErrFolderNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Folder not found",
				Error:   dto.TagFolderNotFound,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to create note",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusCreated, noteToResponse(note))
}

// Update handles PUT /notes/{id} (and POST /notes/{id} for older clients)
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeNoteNotFound(w)
		return
	}

	var req dto.UpdateNoteRequest
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

	input := notes.UpdateNoteInput{
		Title:   req.Title,
		Content: validation.SanitizeString(req.Content),
	}
	if req.FolderID != nil {
		input.SetFolder = true
		input.FolderID = normalizeFolderID(req.FolderID)
	}

	note, err := h.noteService.Update(r.Context(), memberID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, notes.ErrNoteNotFound):
			h.writeNoteNotFound(w)
		case errors.Is(err, folders.ErrFolderNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
				Message: "Folder not found",
				Error:   dto.TagFolderNotFound,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Failed to update note",
				Error:   dto.TagInternalError,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

// Delete handles DELETE /notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeNoteNotFound(w)
		return
	}

	if err := h.noteService.Delete(r.Context(), memberID, id); err != nil {
		if errors.Is(err, notes.ErrNoteNotFound) {
			h.writeNoteNotFound(w)
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to delete note",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Note deleted"})
}

func (h *NoteHandler) writeNoteNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
		Message: "Note not found",
		Error:   dto.TagNoteNotFound,
	})
}

// normalizeFolderID maps the folder_id 0 sentinel to nil (unfiled)
func normalizeFolderID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
