package video

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func serveHome(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HomePage(rec, req)
	return rec
}

func TestHomePage_ListsVideos(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	tags := "#demo"
	hash := "$2a$10$somehash"
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM videos ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "hashtags", "streamtape_url",
			"streamtape_id", "banner_path", "password_hash", "created_at", "updated_at",
		}).
			AddRow("vid2", "Protected Video", (*string)(nil), (*string)(nil),
				"https://streamtape.com/e/def456/", "def456", "banner2.jpg", &hash, now, now).
			AddRow("vid1", "Public Video", (*string)(nil), &tags,
				"https://streamtape.com/e/abc123/", "abc123", "banner1.jpg", (*string)(nil), now, now))

	rec := serveHome(handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{
		"Protected Video",
		"Public Video",
		`href="/watch/vid1"`,
		`href="/watch/vid2"`,
		`<span class="hashtag">#demo</span>`,
		"March 10, 2025",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected %q in page", want)
		}
	}
	if got := strings.Count(page, "· Protected"); got != 1 {
		t.Errorf("expected exactly 1 protected marker, got %d", got)
	}
	if strings.Contains(page, "No videos yet") {
		t.Error("empty state must be hidden when videos exist")
	}
}

func TestHomePage_EmptyState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	mock.ExpectQuery(`FROM videos ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "hashtags", "streamtape_url",
			"streamtape_id", "banner_path", "password_hash", "created_at", "updated_at",
		}))

	rec := serveHome(handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No videos yet") {
		t.Error("expected empty state message")
	}
}

func TestHomePage_QueryFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	mock.ExpectQuery(`FROM videos ORDER BY created_at DESC`).
		WillReturnError(errors.New("connection refused"))

	rec := serveHome(handler)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Error("expected server error page body")
	}
}
