package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/api/middleware"
)

type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

type StatsResponse struct {
	Folders      int64 `json:"folders"`
	Notes        int64 `json:"notes"`
	UnfiledNotes int64 `json:"unfiled_notes"`
}

// Stats handles GET /stats, a small summary of the member's workspace
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())

	var stats StatsResponse
	err := h.db.Table("note_folders").
		Where("member_id = ? AND is_active = ?", memberID, true).
		Count(&stats.Folders).Error
	if err == nil {
		err = h.db.Table("notes").
			Where("member_id = ? AND is_active = ?", memberID, true).
			Count(&stats.Notes).Error
	}
	if err == nil {
		err = h.db.Table("notes").
			Where("member_id = ? AND folder_id IS NULL AND is_active = ?", memberID, true).
			Count(&stats.UnfiledNotes).Error
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to load stats",
			Error:   dto.TagInternalError,
		})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
