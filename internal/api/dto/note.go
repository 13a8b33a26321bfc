package dto

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// folder_id 0 or omitted files the note as unfiled
	FolderID *uint `json:"folder_id,omitempty"`
}

func (r CreateNoteRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	} else if len(r.Title) > 255 {
		errors["title"] = "Title must be at most 255 characters"
	}
	if r.Content == "" {
		errors["content"] = "Content is required"
	}

	return errors
}

// UpdateNoteRequest overwrites title and content. folder_id omitted keeps the
// current folder, 0 unfiles the note, any other value moves it.
type UpdateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID *uint  `json:"folder_id,omitempty"`
}

func (r UpdateNoteRequest) Validate() map[string]string {
	return CreateNoteRequest{Title: r.Title, Content: r.Content}.Validate()
}

type NoteResponse struct {
	ID        uint   `json:"id"`
	FolderID  *uint  `json:"folder_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
