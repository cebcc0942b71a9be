package video

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/streamhub/streamhub/internal/httputil"
	"github.com/streamhub/streamhub/internal/validate"
)

// apiVideo is the catalog entry shape returned by the list endpoint.
type apiVideo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Hashtags    []string `json:"hashtags"`
	BannerURL   string   `json:"banner_url"`
	WatchURL    string   `json:"watch_url"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// apiVideoDetail adds the player fields only the detail endpoint exposes.
type apiVideoDetail struct {
	apiVideo
	StreamtapeURL string `json:"streamtape_url"`
	StreamtapeID  string `json:"streamtape_id"`
	EmbedURL      string `json:"embed_url"`
	Views         int64  `json:"views"`
}

func (h *Handler) apiVideoFromVideo(v *Video) apiVideo {
	tags := v.HashtagList()
	if tags == nil {
		tags = []string{}
	}
	return apiVideo{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Hashtags:    tags,
		BannerURL:   h.absoluteURL(h.storage.PublicURL(v.BannerPath)),
		WatchURL:    h.watchURL(v.ID),
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List responds with the full catalog, newest first. Password protection
// hides nothing here: protected videos gate playback, not discovery.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(r.Context(),
		`SELECT `+videoColumns+` FROM videos ORDER BY created_at DESC`)
	if err != nil {
		slog.Error("video: failed to list videos", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}
	defer rows.Close()

	videos := make([]apiVideo, 0)
	for rows.Next() {
		var v Video
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Hashtags, &v.StreamtapeURL,
			&v.StreamtapeID, &v.BannerPath, &v.PasswordHash, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			slog.Error("video: failed to scan video row", "error", err)
			httputil.WriteError(w, http.StatusInternalServerError, "failed to list videos")
			return
		}
		videos = append(videos, h.apiVideoFromVideo(&v))
	}
	if err := rows.Err(); err != nil {
		slog.Error("video: failed to list videos", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"count":  len(videos),
		"videos": videos,
	})
}

// Get responds with one video's full detail, including its view count.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := fetchVideo(r.Context(), h.db, id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		slog.Error("video: failed to fetch video", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch video")
		return
	}

	var views int64
	if err := h.db.QueryRow(r.Context(),
		`SELECT COUNT(*) FROM video_views WHERE video_id = $1`, id,
	).Scan(&views); err != nil {
		slog.Error("video: failed to count views", "id", id, "error", err)
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"video": apiVideoDetail{
			apiVideo:      h.apiVideoFromVideo(v),
			StreamtapeURL: v.StreamtapeURL,
			StreamtapeID:  v.StreamtapeID,
			EmbedURL:      v.EmbedURL(),
			Views:         views,
		},
	})
}

type recentVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// Stats responds with platform-wide counters and the five newest videos.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var totalVideos int64
	if err := h.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&totalVideos); err != nil {
		slog.Error("video: failed to count videos", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	var totalViews int64
	if err := h.db.QueryRow(ctx, `SELECT COUNT(*) FROM video_views`).Scan(&totalViews); err != nil {
		slog.Error("video: failed to count views", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	counts, err := collectHashtags(ctx, h.db)
	if err != nil {
		slog.Error("video: failed to collect hashtags", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	rows, err := h.db.Query(ctx,
		`SELECT id, title, created_at FROM videos ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		slog.Error("video: failed to list recent videos", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	defer rows.Close()

	recent := make([]recentVideo, 0, 5)
	for rows.Next() {
		var (
			id, title string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &title, &createdAt); err != nil {
			slog.Error("video: failed to scan recent video", "error", err)
			httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
			return
		}
		recent = append(recent, recentVideo{
			ID:        id,
			Title:     title,
			CreatedAt: createdAt.UTC().Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		slog.Error("video: failed to list recent videos", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"stats": map[string]any{
			"total_videos":    totalVideos,
			"total_views":     totalViews,
			"unique_hashtags": len(counts),
			"recent_videos":   recent,
		},
	})
}

type limitsResponse struct {
	Status         string         `json:"status"`
	FieldLimits    map[string]int `json:"field_limits"`
	MaxBannerBytes int            `json:"max_banner_bytes"`
}

// Limits tells API clients the validation caps enforced on uploads so
// they can reject bad input before sending it.
func (h *Handler) Limits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, limitsResponse{
		Status:         "success",
		FieldLimits:    validate.FieldLimits(),
		MaxBannerBytes: maxBannerBytes,
	})
}
