package video

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func serveOEmbed(h *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.OEmbed(rec, req)
	return rec
}

func TestOEmbed_RequiresURLParameter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	rec := serveOEmbed(handler, "/oembed")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "url parameter is required" {
		t.Errorf("expected missing url message, got %q", msg)
	}
}

func TestOEmbed_RejectsNonWatchLinks(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	for _, raw := range []string{
		testBaseURL + "/admin",
		testBaseURL + "/watch/",
		testBaseURL + "/watch/a/b",
		testBaseURL + "/embed/vid123",
	} {
		rec := serveOEmbed(handler, "/oembed?url="+url.QueryEscape(raw))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", raw, http.StatusBadRequest, rec.Code)
			continue
		}
		if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "url must be a watch page link" {
			t.Errorf("%s: expected watch link message, got %q", raw, msg)
		}
	}
}

func TestOEmbed_VideoNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	mock.ExpectQuery(`SELECT id, title, description`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	rec := serveOEmbed(handler, "/oembed?url="+url.QueryEscape(testBaseURL+"/watch/missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "video not found" {
		t.Errorf("expected not found message, got %q", msg)
	}
}

func TestOEmbed_ProtectedVideoIsRefused(t *testing.T) {
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

	rec := serveOEmbed(handler, "/oembed?url="+url.QueryEscape(testBaseURL+"/watch/vid123"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "video is password protected" {
		t.Errorf("expected protected message, got %q", msg)
	}
}

func TestOEmbed_ReturnsEmbedPayload(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)
	v := storedVideo()
	expectFetchVideo(mock, v)

	rec := serveOEmbed(handler, "/oembed?url="+url.QueryEscape(testBaseURL+"/watch/vid123"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp oEmbedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Type != "video" || resp.Version != "1.0" {
		t.Errorf("unexpected oEmbed envelope: type=%q version=%q", resp.Type, resp.Version)
	}
	if resp.Title != "Demo Video" {
		t.Errorf("expected title, got %q", resp.Title)
	}
	if resp.ProviderName != "StreamHub" || resp.ProviderURL != testBaseURL {
		t.Errorf("unexpected provider: %q %q", resp.ProviderName, resp.ProviderURL)
	}
	if resp.ThumbnailURL != testBaseURL+"/static/banners/banner-old.jpg" {
		t.Errorf("expected absolute thumbnail URL, got %q", resp.ThumbnailURL)
	}
	if !strings.Contains(resp.HTML, `src="`+testBaseURL+`/embed/vid123"`) {
		t.Errorf("expected embed iframe, got %q", resp.HTML)
	}
	if resp.Width != 640 || resp.Height != 360 {
		t.Errorf("expected 640x360, got %dx%d", resp.Width, resp.Height)
	}

	// A trailing slash on the watch link resolves to the same video.
	expectFetchVideo(mock, v)
	rec = serveOEmbed(handler, "/oembed?url="+url.QueryEscape(testBaseURL+"/watch/vid123/"))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for trailing slash, got %d", http.StatusOK, rec.Code)
	}
}
