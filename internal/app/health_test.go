package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/store"
)

func TestHealthEndpoints(t *testing.T) {
	a := &App{log: zap.NewNop()}
	h := a.routes()

	get := func(path string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	if code := get("/healthz"); code != http.StatusOK {
		t.Fatalf("healthz = %d", code)
	}
	if code := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before open = %d", code)
	}

	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	a.repo = repo
	if code := get("/readyz"); code != http.StatusOK {
		t.Fatalf("readyz = %d", code)
	}

	_ = repo.Close()
	if code := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Fatalf("readyz after close = %d", code)
	}
}
