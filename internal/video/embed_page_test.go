package video

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func serveEmbed(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/embed/{id}", h.EmbedPage)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestEmbedPage_RendersPlayer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)
	v := storedVideo()
	expectFetchVideo(mock, v)
	expectViewInsert(mock, "vid123")

	req := httptest.NewRequest(http.MethodGet, "/embed/vid123", nil)
	rec := serveEmbed(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, `<iframe src="https://streamtape.com/e/abc123/"`) {
		t.Error("expected player iframe in page")
	}
	if !strings.Contains(page, `href="`+testBaseURL+`/watch/vid123"`) {
		t.Error("expected backlink to the watch page")
	}
	if !strings.Contains(page, "Watch on StreamHub") {
		t.Error("expected footer branding")
	}

	// Give the view recording goroutine time to execute
	time.Sleep(100 * time.Millisecond)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet pgxmock expectations: %v", err)
	}
}

func TestEmbedPage_GateForProtectedVideo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)
	v := storedVideo()
	hash := "$2a$10$somerealhashvalue"
	v.PasswordHash = &hash
	expectFetchVideo(mock, v)

	req := httptest.NewRequest(http.MethodGet, "/embed/vid123", nil)
	rec := serveEmbed(handler, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "This video is password protected") {
		t.Error("expected password gate in page")
	}
	if strings.Contains(page, "streamtape.com/e/abc123") {
		t.Error("gate must not leak the embed URL")
	}

	// No view may be recorded for a gated request.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet pgxmock expectations: %v", err)
	}
}

func TestEmbedPage_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	mock.ExpectQuery(`SELECT id, title, description`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/embed/missing", nil)
	rec := serveEmbed(handler, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
