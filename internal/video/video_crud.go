package video

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/streamhub/streamhub/internal/validate"
	"github.com/streamhub/streamhub/internal/webhook"
)

// adminFormValues carries the trimmed text fields of the create and
// edit forms, both for persisting and for re-rendering after a
// validation failure.
type adminFormValues struct {
	Title         string
	Description   string
	Hashtags      string
	StreamtapeURL string
}

func videoFormFromRequest(r *http.Request) adminFormValues {
	return adminFormValues{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Hashtags:      strings.TrimSpace(r.FormValue("hashtags")),
		StreamtapeURL: strings.TrimSpace(r.FormValue("streamtape_url")),
	}
}

func editFormFromVideo(v *Video) adminFormValues {
	form := adminFormValues{
		Title:         v.Title,
		StreamtapeURL: v.StreamtapeURL,
	}
	if v.Description != nil {
		form.Description = *v.Description
	}
	if v.Hashtags != nil {
		form.Hashtags = *v.Hashtags
	}
	return form
}

func validateVideoForm(form adminFormValues, password string) string {
	if msg := validate.Title(form.Title); msg != "" {
		return msg
	}
	if msg := validate.StreamtapeURL(form.StreamtapeURL); msg != "" {
		return msg
	}
	if msg := validate.Description(form.Description); msg != "" {
		return msg
	}
	if msg := validate.Hashtags(form.Hashtags); msg != "" {
		return msg
	}
	if msg := validate.Password(password); msg != "" {
		return msg
	}
	return ""
}

func bannerErrorMessage(err error) string {
	if errors.Is(err, errBannerTooLarge) || errors.Is(err, errBannerNotImage) {
		return err.Error()
	}
	return "could not read the banner image"
}

// nullable maps an empty form field to NULL so optional columns never
// hold empty strings.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		h.renderAdminPage(w, r, http.StatusUnprocessableEntity, adminFormValues{}, "could not read the upload form")
		return
	}

	form := videoFormFromRequest(r)
	password := r.FormValue("password")

	if msg := validateVideoForm(form, password); msg != "" {
		h.renderAdminPage(w, r, http.StatusUnprocessableEntity, form, msg)
		return
	}

	bannerKey, bannerData, err := processBannerUpload(r)
	if err != nil {
		h.renderAdminPage(w, r, http.StatusUnprocessableEntity, form, bannerErrorMessage(err))
		return
	}
	if bannerKey == "" {
		h.renderAdminPage(w, r, http.StatusUnprocessableEntity, form, "a banner image is required")
		return
	}

	passwordHash, err := hashWatchPassword(password)
	if err != nil {
		slog.Error("video: password hash failed", "error", err)
		h.renderServerError(w, r)
		return
	}

	videoID, err := newVideoID()
	if err != nil {
		slog.Error("video: id generation failed", "error", err)
		h.renderServerError(w, r)
		return
	}

	if err := h.storage.Put(r.Context(), bannerKey, "image/jpeg", bannerData); err != nil {
		slog.Error("video: banner upload failed", "key", bannerKey, "error", err)
		h.renderServerError(w, r)
		return
	}

	_, err = h.db.Exec(r.Context(),
		`INSERT INTO videos (id, title, description, hashtags, streamtape_url, streamtape_id, banner_path, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		videoID, form.Title, nullable(form.Description), nullable(form.Hashtags),
		form.StreamtapeURL, ExtractStreamtapeID(form.StreamtapeURL), bannerKey, passwordHash,
	)
	if err != nil {
		slog.Error("video: insert failed", "video_id", videoID, "error", err)
		h.discardBanner(bannerKey)
		h.renderServerError(w, r)
		return
	}

	h.notifyPublished(form.Title, videoID)
	h.dispatchWebhook(webhook.Event{
		Name:      "video.created",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"videoId":   videoID,
			"title":     form.Title,
			"watchUrl":  h.watchURL(videoID),
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	v, err := fetchVideo(r.Context(), h.db, videoID)
	if errors.Is(err, ErrNotFound) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("video: edit lookup failed", "video_id", videoID, "error", err)
		h.renderServerError(w, r)
		return
	}

	h.renderEditPage(w, r, http.StatusOK, v, editFormFromVideo(v), "")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	v, err := fetchVideo(r.Context(), h.db, videoID)
	if errors.Is(err, ErrNotFound) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("video: edit lookup failed", "video_id", videoID, "error", err)
		h.renderServerError(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		h.renderEditPage(w, r, http.StatusUnprocessableEntity, v, editFormFromVideo(v), "could not read the edit form")
		return
	}

	form := videoFormFromRequest(r)
	password := r.FormValue("password")

	if msg := validateVideoForm(form, password); msg != "" {
		h.renderEditPage(w, r, http.StatusUnprocessableEntity, v, form, msg)
		return
	}

	bannerKey, bannerData, err := processBannerUpload(r)
	if err != nil {
		h.renderEditPage(w, r, http.StatusUnprocessableEntity, v, form, bannerErrorMessage(err))
		return
	}

	bannerPath := v.BannerPath
	if bannerKey != "" {
		if err := h.storage.Put(r.Context(), bannerKey, "image/jpeg", bannerData); err != nil {
			slog.Error("video: banner upload failed", "key", bannerKey, "error", err)
			h.renderServerError(w, r)
			return
		}
		bannerPath = bannerKey
	}

	passwordHash, err := hashWatchPassword(password)
	if err != nil {
		slog.Error("video: password hash failed", "error", err)
		h.renderServerError(w, r)
		return
	}

	tag, err := h.db.Exec(r.Context(),
		`UPDATE videos
		 SET title = $1, description = $2, hashtags = $3, streamtape_url = $4, streamtape_id = $5, banner_path = $6, password_hash = $7, updated_at = now()
		 WHERE id = $8`,
		form.Title, nullable(form.Description), nullable(form.Hashtags),
		form.StreamtapeURL, ExtractStreamtapeID(form.StreamtapeURL),
		bannerPath, passwordHash, videoID,
	)
	if err != nil {
		slog.Error("video: update failed", "video_id", videoID, "error", err)
		h.renderServerError(w, r)
		return
	}
	if tag.RowsAffected() == 0 {
		if bannerKey != "" {
			h.discardBanner(bannerKey)
		}
		h.renderNotFound(w, r)
		return
	}

	// The old banner goes away only after the replacement is live.
	if bannerKey != "" && bannerKey != v.BannerPath {
		h.discardBanner(v.BannerPath)
	}

	h.dispatchWebhook(webhook.Event{
		Name:      "video.updated",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"videoId":   videoID,
			"title":     form.Title,
			"watchUrl":  h.watchURL(videoID),
			"updatedAt": time.Now().UTC().Format(time.RFC3339),
		},
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var title string
	var bannerPath string
	err := h.db.QueryRow(r.Context(),
		`DELETE FROM videos WHERE id = $1 RETURNING title, banner_path`,
		videoID,
	).Scan(&title, &bannerPath)
	if errors.Is(err, pgx.ErrNoRows) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("video: delete failed", "video_id", videoID, "error", err)
		h.renderServerError(w, r)
		return
	}

	h.discardBanner(bannerPath)
	h.notifyDeleted(title, videoID)
	h.dispatchWebhook(webhook.Event{
		Name:      "video.deleted",
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"videoId": videoID,
			"title":   title,
		},
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
