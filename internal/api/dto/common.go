package dto

// ErrorResponse is the uniform failure body: a human message plus a
// machine-readable tag, with per-field messages for validation failures.
type ErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error tags shared across handlers and middleware.
const (
	TagValidationFailed   = "validation_failed"
	TagEmailExists        = "email_exists"
	TagInvalidCredentials = "invalid_credentials"
	TagInactiveMember     = "member_inactive"
	TagTokenMissing       = "token_missing"
	TagInvalidTokenFormat = "invalid_token_format"
	TagInvalidToken       = "invalid_token"
	TagFolderNotFound     = "folder_not_found"
	TagParentNotFound     = "parent_folder_not_found"
	TagFolderCycle        = "folder_cycle"
	TagHasChildren        = "has_children"
	TagHasNotes           = "has_notes"
	TagNoteNotFound       = "note_not_found"
	TagInternalError      = "internal_error"
)
