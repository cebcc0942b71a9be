package video

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/streamhub/streamhub/internal/httputil"
)

type oEmbedResponse struct {
	Type         string `json:"type"`
	Version      string `json:"version"`
	Title        string `json:"title"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	HTML         string `json:"html"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// OEmbed implements oEmbed discovery for watch page links, so chat apps
// and CMSes can turn a pasted link into an embedded player.
func (h *Handler) OEmbed(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		httputil.WriteError(w, http.StatusBadRequest, "url parameter is required")
		return
	}

	u, err := url.Parse(raw)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid url")
		return
	}
	id, ok := strings.CutPrefix(strings.TrimSuffix(u.Path, "/"), "/watch/")
	if !ok || id == "" || strings.Contains(id, "/") {
		httputil.WriteError(w, http.StatusBadRequest, "url must be a watch page link")
		return
	}

	v, err := fetchVideo(r.Context(), h.db, id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch video")
		return
	}
	if v.Protected() {
		httputil.WriteError(w, http.StatusForbidden, "video is password protected")
		return
	}

	embedURL := h.baseURL + "/embed/" + v.ID
	iframeHTML := `<iframe src="` + embedURL + `" width="640" height="360" frameborder="0" allowfullscreen></iframe>`

	httputil.WriteJSON(w, http.StatusOK, oEmbedResponse{
		Type:         "video",
		Version:      "1.0",
		Title:        v.Title,
		ProviderName: "StreamHub",
		ProviderURL:  h.baseURL,
		ThumbnailURL: h.absoluteURL(h.storage.PublicURL(v.BannerPath)),
		HTML:         iframeHTML,
		Width:        640,
		Height:       360,
	})
}
