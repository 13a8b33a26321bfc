package folders

import (
	"context"
	"errors"

	"github.com/chiawei/notebox/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrParentNotFound = errors.New("parent folder not found")
	ErrHasChildren    = errors.New("folder has child folders")
	ErrHasNotes       = errors.New("folder has notes")
	ErrFolderCycle    = errors.New("folder cannot be its own ancestor")
)

// PathSeparator joins the root-to-self name chain in display paths.
const PathSeparator = " -> "

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateFolderInput struct {
	Name        string
	Description string
	ParentID    *uint
}

type UpdateFolderInput struct {
	Name string
	// SetParent distinguishes "leave the parent alone" from "move to root"
	// (ParentID nil) and "move under ParentID".
	SetParent bool
	ParentID  *uint
}

// FolderNode is one node of the tree returned by List, children populated
// recursively and ordered by sort order.
type FolderNode struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	ParentID  *uint        `json:"parent_id"`
	ArrowPath string       `json:"arrow_path"`
	SortOrder int          `json:"sort_order"`
	Children  []FolderNode `json:"children,omitempty"`
}

// List returns the member's root folders with children recursively attached.
// The whole tree is loaded in one query and assembled from a parent index,
// so display paths stay a pure function of the loaded records.
func (s *Service) List(ctx context.Context, memberID uint) ([]FolderNode, error) {
	records, err := s.loadAll(ctx, memberID)
	if err != nil {
		return nil, err
	}

	childIndex := make(map[uint][]*models.NoteFolder)
	var roots []*models.NoteFolder
	for i := range records {
		rec := &records[i]
		if rec.ParentID == nil {
			roots = append(roots, rec)
		} else {
			childIndex[*rec.ParentID] = append(childIndex[*rec.ParentID], rec)
		}
	}

	nodes := make([]FolderNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, buildNode(root, "", childIndex))
	}
	return nodes, nil
}

func buildNode(rec *models.NoteFolder, parentPath string, childIndex map[uint][]*models.NoteFolder) FolderNode {
	path := rec.Name
	if parentPath != "" {
		path = parentPath + PathSeparator + rec.Name
	}

	node := FolderNode{
		ID:        rec.ID,
		Name:      rec.Name,
		ParentID:  rec.ParentID,
		ArrowPath: path,
		SortOrder: rec.SortOrder,
	}
	for _, child := range childIndex[rec.ID] {
		node.Children = append(node.Children, buildNode(child, path, childIndex))
	}
	return node
}

// ArrowPath computes the root-to-folder display path by walking the parent
// chain upward. Termination relies on the no-cycle invariant enforced on
// every parent assignment.
func (s *Service) ArrowPath(ctx context.Context, memberID, id uint) (string, error) {
	folder, err := s.ownedFolder(ctx, memberID, id)
	if err != nil {
		return "", err
	}

	path := folder.Name
	current := folder
	for current.ParentID != nil {
		var parent models.NoteFolder
		if err := s.db.WithContext(ctx).First(&parent, *current.ParentID).Error; err != nil {
			return "", err
		}
		path = parent.Name + PathSeparator + path
		current = &parent
	}
	return path, nil
}

func (s *Service) Create(ctx context.Context, memberID uint, input CreateFolderInput) (*models.NoteFolder, error) {
	if input.ParentID != nil {
		if _, err := s.ownedFolder(ctx, memberID, *input.ParentID); err != nil {
			return nil, ErrParentNotFound
		}
	}

	maxSort, err := s.maxSiblingSort(ctx, memberID, input.ParentID)
	if err != nil {
		return nil, err
	}

	folder := models.NoteFolder{
		MemberID:    memberID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   maxSort + 1,
		IsActive:    true,
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (s *Service) Update(ctx context.Context, memberID, id uint, input UpdateFolderInput) (*models.NoteFolder, error) {
	folder, err := s.ownedFolder(ctx, memberID, id)
	if err != nil {
		return nil, err
	}

	folder.Name = input.Name

	if input.SetParent {
		if input.ParentID != nil {
			if *input.ParentID == id {
				return nil, ErrFolderCycle
			}
			parent, err := s.ownedFolder(ctx, memberID, *input.ParentID)
			if err != nil {
				return nil, ErrParentNotFound
			}
			if err := s.checkNoCycle(ctx, id, parent); err != nil {
				return nil, err
			}
		}
		folder.ParentID = input.ParentID
	}

	if err := s.db.WithContext(ctx).Save(folder).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

// checkNoCycle walks upward from the proposed parent; reaching the folder
// being moved means the move would close a loop.
func (s *Service) checkNoCycle(ctx context.Context, movingID uint, parent *models.NoteFolder) error {
	current := parent
	for current.ParentID != nil {
		if *current.ParentID == movingID {
			return ErrFolderCycle
		}
		var next models.NoteFolder
		if err := s.db.WithContext(ctx).First(&next, *current.ParentID).Error; err != nil {
			return err
		}
		current = &next
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, memberID, id uint) error {
	folder, err := s.ownedFolder(ctx, memberID, id)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.NoteFolder{}).
		Where("parent_id = ?", folder.ID).
		Count(&childCount).Error; err != nil {
		return err
	}
	if childCount > 0 {
		return ErrHasChildren
	}

	var noteCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("folder_id = ?", folder.ID).
		Count(&noteCount).Error; err != nil {
		return err
	}
	if noteCount > 0 {
		return ErrHasNotes
	}

	return s.db.WithContext(ctx).Delete(folder).Error
}

// Get returns the folder only when it belongs to the member; anything else is
// a not-found, never a forbidden.
func (s *Service) Get(ctx context.Context, memberID, id uint) (*models.NoteFolder, error) {
	return s.ownedFolder(ctx, memberID, id)
}

func (s *Service) ownedFolder(ctx context.Context, memberID, id uint) (*models.NoteFolder, error) {
	var folder models.NoteFolder
	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&folder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return &folder, nil
}

func (s *Service) loadAll(ctx context.Context, memberID uint) ([]models.NoteFolder, error) {
	var records []models.NoteFolder
	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("sort_order, id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) maxSiblingSort(ctx context.Context, memberID uint, parentID *uint) (int, error) {
	query := s.db.WithContext(ctx).
		Model(&models.NoteFolder{}).
		Where("member_id = ?", memberID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var maxSort int
	if err := query.Select("COALESCE(MAX(sort_order), 0)").Scan(&maxSort).Error; err != nil {
		return 0, err
	}
	return maxSort, nil
}
