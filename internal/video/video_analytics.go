package video

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// recordView logs one watch of a video without blocking the render.
// Only a short hash of the viewer is stored, never a raw IP.
func (h *Handler) recordView(r *http.Request, videoID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ip := clientIP(r)
		hash := viewerHash(ip, r.UserAgent())
		ref := categorizeReferrer(r.Header.Get("Referer"))
		browser := parseBrowser(r.UserAgent())
		device := parseDevice(r.UserAgent())
		var country, city string
		if h.geoResolver != nil {
			country, city = h.geoResolver.Lookup(ip)
		}
		if _, err := h.db.Exec(ctx,
			`INSERT INTO video_views (video_id, viewer_hash, referrer, browser, device, country, city)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			videoID, hash, ref, browser, device, country, city,
		); err != nil {
			slog.Error("video: failed to record view", "video_id", videoID, "error", err)
		}
	}()
}
