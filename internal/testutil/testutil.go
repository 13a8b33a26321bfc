package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chiawei/notebox/internal/auth"
	"github.com/chiawei/notebox/internal/database/models"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.Member{},
		&models.AccessToken{},
		&models.NoteFolder{},
		&models.Note{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TestSetup bundles the shared fixtures handler tests need
type TestSetup struct {
	DB          *gorm.DB
	AuthService *auth.Service
}

func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	return &TestSetup{
		DB:          db,
		AuthService: auth.NewService(db),
	}
}

// Cleanup closes the test database connection
func (tc *TestSetup) Cleanup() {
	sqlDB, err := tc.DB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// CreateTestMember creates a member with a random email and the password
// "testpassword1"
func CreateTestMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()

	hash, err := auth.HashPassword("testpassword1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	member := &models.Member{
		Name:         "Test Member",
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}

	return member
}

// IssueTestToken issues a valid bearer token for the given member
func IssueTestToken(t *testing.T, authService *auth.Service, member *models.Member) string {
	t.Helper()

	token, err := authService.IssueToken(context.Background(), member)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}

	return token
}

// CreateTestFolder creates a folder for the member; parentID nil means root
func CreateTestFolder(t *testing.T, db *gorm.DB, memberID uint, name string, parentID *uint) *models.NoteFolder {
	t.Helper()

	folder := &models.NoteFolder{
		MemberID: memberID,
		ParentID: parentID,
		Name:     name,
		IsActive: true,
	}

	if err := db.Create(folder).Error; err != nil {
		t.Fatalf("failed to create test folder: %v", err)
	}

	return folder
}

// CreateTestNote creates a note for the member; folderID nil means unfiled
func CreateTestNote(t *testing.T, db *gorm.DB, memberID uint, title string, folderID *uint) *models.Note {
	t.Helper()

	note := &models.Note{
		MemberID: memberID,
		FolderID: folderID,
		Title:    title,
		Content:  "content of " + title,
		IsActive: true,
	}

	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}

	return note
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}
