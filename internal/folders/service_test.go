package folders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiawei/notebox/internal/folders"
	"github.com/chiawei/notebox/internal/testutil"
)

func TestService_Create_SortOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	member := testutil.CreateTestMember(t, db)

	// Three sequential root creates on an empty tree get 1, 2, 3
	for i, name := range []string{"First", "Second", "Third"} {
		folder, err := service.Create(ctx, member.ID, folders.CreateFolderInput{Name: name})
		require.NoError(t, err)
		assert.Equal(t, i+1, folder.SortOrder)
		assert.Nil(t, folder.ParentID)
		assert.True(t, folder.IsActive)
	}

	// Sibling numbering restarts per parent
	parent, err := service.Create(ctx, member.ID, folders.CreateFolderInput{Name: "Parent"})
	require.NoError(t, err)

	child, err := service.Create(ctx, member.ID, folders.CreateFolderInput{
		Name:     "Child",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, child.SortOrder)
}

func TestService_Create_ParentChecks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	member := testutil.CreateTestMember(t, db)
	other := testutil.CreateTestMember(t, db)

	t.Run("unknown parent", func(t *testing.T) {
		missing := uint(999999)
		_, err := service.Create(ctx, member.ID, folders.CreateFolderInput{
			Name:     "Orphan",
			ParentID: &missing,
		})
		assert.ErrorIs(t, err, folders.ErrParentNotFound)
	})

	t.Run("another member's folder is not a valid parent", func(t *testing.T) {
		theirs := testutil.CreateTestFolder(t, db, other.ID, "Theirs", nil)
		_, err := service.Create(ctx, member.ID, folders.CreateFolderInput{
			Name:     "Sneaky",
			ParentID: &theirs.ID,
		})
		assert.ErrorIs(t, err, folders.ErrParentNotFound)
	})
}

func TestService_List_TreeAndPaths(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	member := testutil.CreateTestMember(t, db)

	a, err := service.Create(ctx, member.ID, folders.CreateFolderInput{Name: "A"})
	require.NoError(t, err)
	b, err := service.Create(ctx, member.ID, folders.CreateFolderInput{Name: "B", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := service.Create(ctx, member.ID, folders.CreateFolderInput{Name: "C", ParentID: &b.ID})
	require.NoError(t, err)

	// Second root after A to check sibling ordering
	_, err = service.Create(ctx, member.ID, folders.CreateFolderInput{Name: "Z"})
	require.NoError(t, err)

	tree, err := service.List(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "A", tree[0].Name)
	assert.Equal(t, "Z", tree[1].Name)
	assert.Equal(t, "A", tree[0].ArrowPath)

	require.Len(t, tree[0].Children, 1)
	nodeB := tree[0].Children[0]
	assert.Equal(t, "A -> B", nodeB.ArrowPath)

	require.Len(t, nodeB.Children, 1)
	nodeC := nodeB.Children[0]
	assert.Equal(t, c.ID, nodeC.ID)
	assert.Equal(t, "A -> B -> C", nodeC.ArrowPath)

	path, err := service.ArrowPath(ctx, member.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "A -> B -> C", path)
}

func TestService_OwnershipIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	alice := testutil.CreateTestMember(t, db)
	bob := testutil.CreateTestMember(t, db)

	theirs := testutil.CreateTestFolder(t, db, alice.ID, "Private", nil)

	// Cross-member access is always a not-found, never a forbidden
	_, err := service.Update(ctx, bob.ID, theirs.ID, folders.UpdateFolderInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, folders.ErrFolderNotFound)

	err = service.Delete(ctx, bob.ID, theirs.ID)
	assert.ErrorIs(t, err, folders.ErrFolderNotFound)

	tree, err := service.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	member := testutil.CreateTestMember(t, db)

	t.Run("rename keeps parent", func(t *testing.T) {
		root := testutil.CreateTestFolder(t, db, member.ID, "Old", nil)
		child := testutil.CreateTestFolder(t, db, member.ID, "Child", &root.ID)

		updated, err := service.Update(ctx, member.ID, child.ID, folders.UpdateFolderInput{Name: "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, root.ID, *updated.ParentID)
	})

	t.Run("move to new parent", func(t *testing.T) {
		parentA := testutil.CreateTestFolder(t, db, member.ID, "ParentA", nil)
		parentB := testutil.CreateTestFolder(t, db, member.ID, "ParentB", nil)
		moved := testutil.CreateTestFolder(t, db, member.ID, "Moved", &parentA.ID)

		updated, err := service.Update(ctx, member.ID, moved.ID, folders.UpdateFolderInput{
			Name:      "Moved",
			SetParent: true,
			ParentID:  &parentB.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, parentB.ID, *updated.ParentID)
	})

	t.Run("move to root", func(t *testing.T) {
		parent := testutil.CreateTestFolder(t, db, member.ID, "SomeParent", nil)
		nested := testutil.CreateTestFolder(t, db, member.ID, "Nested", &parent.ID)

		updated, err := service.Update(ctx, member.ID, nested.ID, folders.UpdateFolderInput{
			Name:      "Nested",
			SetParent: true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("self as parent is a cycle", func(t *testing.T) {
		folder := testutil.CreateTestFolder(t, db, member.ID, "Selfie", nil)

		_, err := service.Update(ctx, member.ID, folder.ID, folders.UpdateFolderInput{
			Name:      "Selfie",
			SetParent: true,
			ParentID:  &folder.ID,
		})
		assert.ErrorIs(t, err, folders.ErrFolderCycle)
	})

	t.Run("descendant as parent is a cycle", func(t *testing.T) {
		top := testutil.CreateTestFolder(t, db, member.ID, "Top", nil)
		mid := testutil.CreateTestFolder(t, db, member.ID, "Mid", &top.ID)
		leaf := testutil.CreateTestFolder(t, db, member.ID, "Leaf", &mid.ID)

		_, err := service.Update(ctx, member.ID, top.ID, folders.UpdateFolderInput{
			Name:      "Top",
			SetParent: true,
			ParentID:  &leaf.ID,
		})
		assert.ErrorIs(t, err, folders.ErrFolderCycle)
	})
}

func TestService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := folders.NewService(db)
	ctx := context.Background()

	member := testutil.CreateTestMember(t, db)

	t.Run("blocked by child folder", func(t *testing.T) {
		parent := testutil.CreateTestFolder(t, db, member.ID, "Parent", nil)
		testutil.CreateTestFolder(t, db, member.ID, "Child", &parent.ID)

		err := service.Delete(ctx, member.ID, parent.ID)
		assert.ErrorIs(t, err, folders.ErrHasChildren)
	})

	t.Run("blocked by note", func(t *testing.T) {
		folder := testutil.CreateTestFolder(t, db, member.ID, "WithNote", nil)
		testutil.CreateTestNote(t, db, member.ID, "Keep me", &folder.ID)

		err := service.Delete(ctx, member.ID, folder.ID)
		assert.ErrorIs(t, err, folders.ErrHasNotes)
	})

	t.Run("childless and note-free folder deletes", func(t *testing.T) {
		folder := testutil.CreateTestFolder(t, db, member.ID, "Ephemeral", nil)

		require.NoError(t, service.Delete(ctx, member.ID, folder.ID))

		tree, err := service.List(ctx, member.ID)
		require.NoError(t, err)
		for _, node := range tree {
			assert.NotEqual(t, folder.ID, node.ID)
		}

		err = service.Delete(ctx, member.ID, folder.ID)
		assert.ErrorIs(t, err, folders.ErrFolderNotFound)
	})
}
