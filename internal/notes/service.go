package notes

import (
	"context"
	"errors"

	"github.com/chiawei/notebox/internal/database/models"
	"github.com/chiawei/notebox/internal/folders"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

// UnfiledGroupName labels the synthetic group holding notes with no folder.
const UnfiledGroupName = "Unfiled"

type Service struct {
	db      *gorm.DB
	folders *folders.Service
}

func NewService(db *gorm.DB, folderService *folders.Service) *Service {
	return &Service{db: db, folders: folderService}
}

type CreateNoteInput struct {
	Title    string
	Content  string
	FolderID *uint // nil means unfiled
}

type UpdateNoteInput struct {
	Title   string
	Content string
	// SetFolder distinguishes "leave the folder alone" from "unfile"
	// (FolderID nil) and "move into FolderID".
	SetFolder bool
	FolderID  *uint
}

// NoteGroup is one folder's worth of notes in a List response, ordered most
// recently updated first. FolderID nil marks the unfiled group.
type NoteGroup struct {
	FolderID  *uint         `json:"folder_id"`
	Name      string        `json:"name"`
	ArrowPath string        `json:"arrow_path,omitempty"`
	Notes     []models.Note `json:"notes"`
}

// List returns the member's active notes grouped by folder, folders in tree
// order, with an unfiled group appended when unfiled notes exist. Folders
// without notes are omitted.
func (s *Service) List(ctx context.Context, memberID uint) ([]NoteGroup, error) {
	var records []models.Note
	if err := s.db.WithContext(ctx).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("updated_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	byFolder := make(map[uint][]models.Note)
	var unfiled []models.Note
	for _, note := range records {
		if note.FolderID == nil {
			unfiled = append(unfiled, note)
		} else {
			byFolder[*note.FolderID] = append(byFolder[*note.FolderID], note)
		}
	}

	tree, err := s.folders.List(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var groups []NoteGroup
	for _, node := range flatten(tree) {
		notesInFolder, ok := byFolder[node.ID]
		if !ok {
			continue
		}
		id := node.ID
		groups = append(groups, NoteGroup{
			FolderID:  &id,
			Name:      node.Name,
			ArrowPath: node.ArrowPath,
			Notes:     notesInFolder,
		})
	}

	if len(unfiled) > 0 {
		groups = append(groups, NoteGroup{
			Name:  UnfiledGroupName,
			Notes: unfiled,
		})
	}

	return groups, nil
}

func flatten(nodes []folders.FolderNode) []folders.FolderNode {
	var flat []folders.FolderNode
	for _, node := range nodes {
		flat = append(flat, node)
		flat = append(flat, flatten(node.Children)...)
	}
	return flat
}

// ListByFolder returns the notes filed in one folder. The folder must belong
// to the member or the whole call is a folder-not-found.
func (s *Service) ListByFolder(ctx context.Context, memberID, folderID uint) (*NoteGroup, error) {
	folder, err := s.folders.Get(ctx, memberID, folderID)
	if err != nil {
		return nil, err
	}

	path, err := s.folders.ArrowPath(ctx, memberID, folderID)
	if err != nil {
		return nil, err
	}

	var records []models.Note
	if err := s.db.WithContext(ctx).
		Where("member_id = ? AND folder_id = ? AND is_active = ?", memberID, folderID, true).
		Order("updated_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	id := folder.ID
	return &NoteGroup{
		FolderID:  &id,
		Name:      folder.Name,
		ArrowPath: path,
		Notes:     records,
	}, nil
}

func (s *Service) Get(ctx context.Context, memberID, id uint) (*models.Note, error) {
	return s.ownedNote(ctx, memberID, id)
}

func (s *Service) Create(ctx context.Context, memberID uint, input CreateNoteInput) (*models.Note, error) {
	if input.FolderID != nil {
		// Check-then-act: a concurrent delete of the folder between this
		// check and the insert is accepted.
		if _, err := s.folders.Get(ctx, memberID, *input.FolderID); err != nil {
			return nil, err
		}
	}

	note := models.Note{
		MemberID: memberID,
		FolderID: input.FolderID,
		Title:    input.Title,
		Content:  input.Content,
		IsActive: true,
	}

	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) Update(ctx context.Context, memberID, id uint, input UpdateNoteInput) (*models.Note, error) {
	note, err := s.ownedNote(ctx, memberID, id)
	if err != nil {
		return nil, err
	}

	note.Title = input.Title
	note.Content = input.Content

	if input.SetFolder {
		if input.FolderID != nil {
			if _, err := s.folders.Get(ctx, memberID, *input.FolderID); err != nil {
				return nil, err
			}
		}
		note.FolderID = input.FolderID
	}

	if err := s.db.WithContext(ctx).Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, memberID, id uint) error {
	note, err := s.ownedNote(ctx, memberID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(note).Error
}

func (s *Service) ownedNote(ctx context.Context, memberID, id uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}
