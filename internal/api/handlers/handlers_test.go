package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chiawei/notebox/internal/api"
	"github.com/chiawei/notebox/internal/testutil"
)

// setupAPI wires the full router against an in-memory database so handler
// tests exercise the same middleware chain production requests go through.
func setupAPI(t *testing.T) (*testutil.TestSetup, http.Handler) {
	t.Helper()

	tc := testutil.NewTestContext(t)
	t.Cleanup(tc.Cleanup)

	router := api.NewRouter(api.RouterConfig{
		DB:          tc.DB,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuthService: tc.AuthService,
	})
	return tc, router
}

func execute(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
