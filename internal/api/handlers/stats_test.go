package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiawei/notebox/internal/api/handlers"
	"github.com/chiawei/notebox/internal/testutil"
)

func TestStats(t *testing.T) {
	tc, router := setupAPI(t)

	member := testutil.CreateTestMember(t, tc.DB)
	token := testutil.IssueTestToken(t, tc.AuthService, member)

	work := testutil.CreateTestFolder(t, tc.DB, member.ID, "Work", nil)
	testutil.CreateTestFolder(t, tc.DB, member.ID, "Projects", &work.ID)
	testutil.CreateTestNote(t, tc.DB, member.ID, "Filed", &work.ID)
	testutil.CreateTestNote(t, tc.DB, member.ID, "Loose", nil)

	// Another member's data never leaks into the counts
	other := testutil.CreateTestMember(t, tc.DB)
	testutil.CreateTestFolder(t, tc.DB, other.ID, "Theirs", nil)
	testutil.CreateTestNote(t, tc.DB, other.ID, "Their note", nil)

	rr := execute(router, testutil.AuthenticatedRequest(t, http.MethodGet, "/stats", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)

	var stats handlers.StatsResponse
	testutil.ParseJSONResponse(t, rr, &stats)
	assert.EqualValues(t, 2, stats.Folders)
	assert.EqualValues(t, 2, stats.Notes)
	assert.EqualValues(t, 1, stats.UnfiledNotes)
}
