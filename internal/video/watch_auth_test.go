package video

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/streamhub/streamhub/internal/auth"
)

// --- Password Hash Tests ---

func TestHashWatchPassword_EmptyMeansPublic(t *testing.T) {
	hash, err := hashWatchPassword("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != nil {
		t.Errorf("expected nil hash for empty password, got %q", *hash)
	}
}

func TestHashWatchPassword_RoundTrips(t *testing.T) {
	hash, err := hashWatchPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == nil {
		t.Fatal("expected a hash")
	}
	if !strings.HasPrefix(*hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", *hash)
	}
	if !checkWatchPassword(*hash, "secret123") {
		t.Error("correct password must verify")
	}
	if checkWatchPassword(*hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}

// --- Access Cookie Tests ---

func TestHasWatchAccess_AcceptsValidToken(t *testing.T) {
	token, err := auth.GenerateWatchToken(testWatchSecret, "vid123")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/watch/vid123", nil)
	req.AddCookie(&http.Cookie{Name: "watch_access_vid123", Value: token})

	if !hasWatchAccess(req, testWatchSecret, "vid123") {
		t.Error("valid token must grant access")
	}
}

func TestHasWatchAccess_RejectsMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/watch/vid123", nil)
	if hasWatchAccess(req, testWatchSecret, "vid123") {
		t.Error("missing cookie must not grant access")
	}
}

func TestHasWatchAccess_RejectsGarbageToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/watch/vid123", nil)
	req.AddCookie(&http.Cookie{Name: "watch_access_vid123", Value: "not-a-jwt"})

	if hasWatchAccess(req, testWatchSecret, "vid123") {
		t.Error("garbage token must not grant access")
	}
}

func TestHasWatchAccess_RejectsTokenForOtherVideo(t *testing.T) {
	token, err := auth.GenerateWatchToken(testWatchSecret, "other-video")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/watch/vid123", nil)
	req.AddCookie(&http.Cookie{Name: "watch_access_vid123", Value: token})

	if hasWatchAccess(req, testWatchSecret, "vid123") {
		t.Error("a token minted for one video must not unlock another")
	}
}

// --- Unlock Tests ---

func expectPasswordLookup(mock pgxmock.PgxPoolIface, videoID string, hash *string) {
	mock.ExpectQuery(`SELECT password_hash FROM videos WHERE id = \$1`).
		WithArgs(videoID).
		WillReturnRows(pgxmock.NewRows([]string{"password_hash"}).AddRow(hash))
}

func postUnlock(h *Handler, videoID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/watch/"+videoID+"/unlock", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	watchRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestUnlock_RejectsBadBody(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	rec := postUnlock(handler, "vid123", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "invalid request body" {
		t.Errorf("expected bad body message, got %q", msg)
	}
}

func TestUnlock_UnknownVideo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	mock.ExpectQuery(`SELECT password_hash FROM videos WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	rec := postUnlock(handler, "missing", `{"password":"whatever"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "video not found" {
		t.Errorf("expected not found message, got %q", msg)
	}
}

func TestUnlock_PublicVideoNeedsNoPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)
	expectPasswordLookup(mock, "vid123", nil)

	rec := postUnlock(handler, "vid123", `{"password":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("public videos must not get an access cookie")
	}
}

func TestUnlock_WrongPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	hash, err := hashWatchPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	expectPasswordLookup(mock, "vid123", hash)

	rec := postUnlock(handler, "vid123", `{"password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if msg := parseErrorResponse(t, rec.Body.Bytes()); msg != "incorrect password" {
		t.Errorf("expected incorrect password message, got %q", msg)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("wrong password must not get an access cookie")
	}
}

func TestUnlock_CorrectPasswordSetsCookie(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, false)

	hash, err := hashWatchPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	expectPasswordLookup(mock, "vid123", hash)

	rec := postUnlock(handler, "vid123", `{"password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "watch_access_vid123" {
		t.Errorf("expected per-video cookie name, got %q", c.Name)
	}
	if !c.HttpOnly {
		t.Error("access cookie must be HttpOnly")
	}
	if c.Secure {
		t.Error("access cookie must not be Secure on plain http")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected SameSite=Strict, got %v", c.SameSite)
	}
	if c.MaxAge != int(auth.WatchTokenDuration.Seconds()) {
		t.Errorf("expected max age %d, got %d", int(auth.WatchTokenDuration.Seconds()), c.MaxAge)
	}

	claims, err := auth.ValidateWatchToken(testWatchSecret, c.Value)
	if err != nil {
		t.Fatalf("cookie token must validate: %v", err)
	}
	if claims.VideoID != "vid123" {
		t.Errorf("expected token for vid123, got %q", claims.VideoID)
	}
}

func TestUnlock_SecureCookieOnHTTPS(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	handler := NewHandler(mock, newMockStorage(), testBaseURL, testWatchSecret, true)

	hash, err := hashWatchPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	expectPasswordLookup(mock, "vid123", hash)

	rec := postUnlock(handler, "vid123", `{"password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].Secure {
		t.Error("access cookie must be Secure behind https")
	}
}
