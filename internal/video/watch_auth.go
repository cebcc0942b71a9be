package video

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/streamhub/streamhub/internal/auth"
	"github.com/streamhub/streamhub/internal/httputil"
	"golang.org/x/crypto/bcrypt"
)

func hashWatchPassword(password string) (*string, error) {
	if password == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s := string(hash)
	return &s, nil
}

func checkWatchPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func watchCookieName(videoID string) string {
	return "watch_access_" + videoID
}

func setWatchCookie(w http.ResponseWriter, videoID, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     watchCookieName(videoID),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.WatchTokenDuration / time.Second),
	})
}

func hasWatchAccess(r *http.Request, secret, videoID string) bool {
	cookie, err := r.Cookie(watchCookieName(videoID))
	if err != nil {
		return false
	}
	claims, err := auth.ValidateWatchToken(secret, cookie.Value)
	if err != nil {
		return false
	}
	return claims.VideoID == videoID
}

type unlockRequest struct {
	Password string `json:"password"`
}

func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var passwordHash *string
	err := h.db.QueryRow(r.Context(),
		`SELECT password_hash FROM videos WHERE id = $1`,
		videoID,
	).Scan(&passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		slog.Error("video: unlock lookup failed", "video_id", videoID, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to check password")
		return
	}

	if passwordHash == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	if !checkWatchPassword(*passwordHash, req.Password) {
		httputil.WriteError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := auth.GenerateWatchToken(h.watchSecret, videoID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to issue access token")
		return
	}
	setWatchCookie(w, videoID, token, h.secureCookies)
	w.WriteHeader(http.StatusOK)
}
