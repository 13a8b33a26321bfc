package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiawei/notebox/internal/api/dto"
	"github.com/chiawei/notebox/internal/folders"
	"github.com/chiawei/notebox/internal/testutil"
)

func createFolderViaAPI(t *testing.T, router http.Handler, token, name string, parentID *uint) dto.FolderResponse {
	t.Helper()

	req := testutil.AuthenticatedRequest(t, http.MethodPost, "/folders", dto.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
	}, token)
	rr := execute(router, req)
	require.Equal(t, http.StatusCreated, rr.Code, "create folder %q: %s", name, rr.Body.String())

	var resp dto.FolderResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	return resp
}

func TestFolders_CreateAndList(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	work := createFolderViaAPI(t, router, token, "Work", nil)
	assert.Nil(t, work.ParentID)
	assert.Equal(t, 1, work.SortOrder)

	projects := createFolderViaAPI(t, router, token, "Projects", &work.ID)
	require.NotNil(t, projects.ParentID)
	assert.Equal(t, work.ID, *projects.ParentID)

	rr := execute(router, testutil.AuthenticatedRequest(t, http.MethodGet, "/folders", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)

	var tree []folders.FolderNode
	testutil.ParseJSONResponse(t, rr, &tree)
	require.Len(t, tree, 1)
	assert.Equal(t, "Work", tree[0].ArrowPath)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Work -> Projects", tree[0].Children[0].ArrowPath)
}

func TestFolders_List_Empty(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	rr := execute(router, testutil.AuthenticatedRequest(t, http.MethodGet, "/folders", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestFolders_Create_Errors(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	t.Run("missing name", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/folders", dto.CreateFolderRequest{}, token)
		rr := execute(router, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagValidationFailed, resp.Error)
		assert.Contains(t, resp.Details, "name")
	})

	t.Run("unknown parent", func(t *testing.T) {
		missing := uint(987654)
		req := testutil.AuthenticatedRequest(t, http.MethodPost, "/folders", dto.CreateFolderRequest{
			Name:     "Orphan",
			ParentID: &missing,
		}, token)
		rr := execute(router, req)
		require.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagParentNotFound, resp.Error)
	})
}

func TestFolders_Update(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	root := createFolderViaAPI(t, router, token, "Root", nil)
	child := createFolderViaAPI(t, router, token, "Child", &root.ID)
	grandchild := createFolderViaAPI(t, router, token, "Grandchild", &child.ID)

	t.Run("rename keeps parent", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPut, fmt.Sprintf("/folders/%d", child.ID),
			dto.UpdateFolderRequest{Name: "Renamed"}, token)
		rr := execute(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.FolderResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Renamed", resp.Name)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, root.ID, *resp.ParentID)
	})

	t.Run("parent_id zero moves to root", func(t *testing.T) {
		zero := uint(0)
		req := testutil.AuthenticatedRequest(t, http.MethodPut, fmt.Sprintf("/folders/%d", grandchild.ID),
			dto.UpdateFolderRequest{Name: "Grandchild", ParentID: &zero}, token)
		rr := execute(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.FolderResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Nil(t, resp.ParentID)
	})

	t.Run("cycle rejected", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPut, fmt.Sprintf("/folders/%d", root.ID),
			dto.UpdateFolderRequest{Name: "Root", ParentID: &child.ID}, token)
		rr := execute(router, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagFolderCycle, resp.Error)
	})

	t.Run("unknown folder", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPut, "/folders/987654",
			dto.UpdateFolderRequest{Name: "Ghost"}, token)
		rr := execute(router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestFolders_Delete(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	t.Run("blocked by children then notes then succeeds", func(t *testing.T) {
		parent := createFolderViaAPI(t, router, token, "Parent", nil)
		child := createFolderViaAPI(t, router, token, "Child", &parent.ID)
		note := testutil.CreateTestNote(t, tc.DB, member.ID, "Blocker", &parent.ID)

		rr := execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/folders/%d", parent.ID), nil, token))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagHasChildren, resp.Error)

		rr = execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/folders/%d", child.ID), nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/folders/%d", parent.ID), nil, token))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagHasNotes, resp.Error)

		rr = execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/folders/%d", parent.ID), nil, token))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("another member's folder reads as missing", func(t *testing.T) {
		other := testutil.CreateTestMember(t, tc.DB)
		theirs := testutil.CreateTestFolder(t, tc.DB, other.ID, "Theirs", nil)

		rr := execute(router, testutil.AuthenticatedRequest(t, http.MethodDelete, fmt.Sprintf("/folders/%d", theirs.ID), nil, token))
		require.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, dto.TagFolderNotFound, resp.Error)
	})
}
