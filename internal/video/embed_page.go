package video

import (
	"errors"
	"html/template"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streamhub/streamhub/internal/httputil"
)

type embedPageData struct {
	Title         string
	EmbedURL      string
	WatchURL      string
	VideoID       string
	NeedsPassword bool
	Nonce         string
}

var embedPageTemplate = template.Must(template.New("embed").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}} — StreamHub</title>
    <style nonce="{{.Nonce}}">
        {{if .NeedsPassword}}` + gateCSS + `
        {{else}}
        * { margin: 0; padding: 0; box-sizing: border-box; }
        html, body { height: 100%; }
        body {
            background: #000;
            display: flex;
            flex-direction: column;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        .frame-wrap { position: relative; flex: 1; }
        .frame-wrap iframe {
            position: absolute;
            inset: 0;
            width: 100%;
            height: 100%;
            border: 0;
        }
        .embed-footer {
            display: flex;
            align-items: center;
            justify-content: flex-end;
            padding: 0.375rem 0.75rem;
            background: #0f172a;
            font-size: 0.8rem;
        }
        .embed-footer a { color: #e11d48; text-decoration: none; font-weight: 600; }
        .embed-footer a:hover { text-decoration: underline; }
        {{end}}
    </style>
</head>
<body>
    {{if .NeedsPassword}}` + gateHTML + `
    {{else}}
    <div class="frame-wrap">
        <iframe src="{{.EmbedURL}}" allowfullscreen allow="autoplay; fullscreen"></iframe>
    </div>
    <div class="embed-footer">
        <a href="{{.WatchURL}}" target="_blank" rel="noopener">Watch on StreamHub</a>
    </div>
    {{end}}
</body>
</html>`))

// EmbedPage serves a chrome-free player meant for iframes on other
// sites. Protected videos get the password prompt instead of the frame.
func (h *Handler) EmbedPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := fetchVideo(r.Context(), h.db, id)
	if errors.Is(err, ErrNotFound) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("video: failed to load embed page", "id", id, "error", err)
		h.renderServerError(w, r)
		return
	}

	data := embedPageData{
		Title:   v.Title,
		VideoID: v.ID,
		Nonce:   httputil.NonceFromContext(r.Context()),
	}
	if v.Protected() && !hasWatchAccess(r, h.watchSecret, v.ID) {
		data.NeedsPassword = true
	} else {
		data.EmbedURL = v.EmbedURL()
		data.WatchURL = h.watchURL(v.ID)
		h.recordView(r, v.ID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := embedPageTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render embed page: %v", err)
	}
}
