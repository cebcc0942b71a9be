package video

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/streamhub/streamhub/internal/httputil"
)

type watchPageData struct {
	Title           string
	MetaDescription string
	Keywords        string
	Description     string
	BannerURL       string
	PageURL         string
	EmbedURL        string
	VideoID         string
	Hashtags        []string
	CreatedDate     string
	PublishedAt     string
	UpdatedAt       string
	ShowUpdated     bool
	Views           int64
	JSONLD          template.JS
	NeedsPassword   bool
	Nonce           string
}

// videoObjectLD is the schema.org VideoObject emitted as JSON-LD on
// the watch page. Keywords stay out of the document entirely when the
// video has no hashtags.
type videoObjectLD struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	UploadDate   string `json:"uploadDate"`
	EmbedURL     string `json:"embedUrl"`
	Keywords     string `json:"keywords,omitempty"`
}

var watchPageTemplate = template.Must(template.New("watch").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}} — StreamHub</title>
{{if not .NeedsPassword}}    <meta name="description" content="{{.MetaDescription}}">
    {{if .Keywords}}<meta name="keywords" content="{{.Keywords}}">
    {{end}}<meta property="og:title" content="{{.Title}}">
    <meta property="og:description" content="{{.MetaDescription}}">
    <meta property="og:type" content="video.other">
    <meta property="og:image" content="{{.BannerURL}}">
    <meta property="og:url" content="{{.PageURL}}">
    <meta property="og:site_name" content="StreamHub">
    <meta name="twitter:card" content="player">
    <meta name="twitter:title" content="{{.Title}}">
    <meta name="twitter:description" content="{{.MetaDescription}}">
    <meta name="twitter:image" content="{{.BannerURL}}">
    <meta name="twitter:player" content="{{.EmbedURL}}">
    <script type="application/ld+json" nonce="{{.Nonce}}">{{.JSONLD}}</script>
{{end}}    <style nonce="{{.Nonce}}">
        {{if .NeedsPassword}}` + gateCSS + `
        {{else}}` + siteCSS + `
        .player-wrap {
            position: relative;
            width: 100%;
            aspect-ratio: 16 / 9;
            background: #000;
            border-radius: 10px;
            overflow: hidden;
        }
        .player-wrap iframe {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%;
            height: 100%;
            border: 0;
        }
        .player-bar {
            display: flex;
            justify-content: flex-end;
            gap: 0.5rem;
            margin-top: 0.625rem;
        }
        .video-title { font-size: 1.5rem; font-weight: 600; margin-top: 1rem; }
        .video-meta {
            display: flex;
            gap: 1rem;
            margin-top: 0.375rem;
            color: #94a3b8;
            font-size: 0.875rem;
        }
        .description {
            margin-top: 1rem;
            color: #cbd5e1;
            line-height: 1.6;
            white-space: pre-line;
        }
        .date-block {
            margin-top: 1.25rem;
            padding: 0.875rem 1rem;
            background: #1e293b;
            border: 1px solid #334155;
            border-radius: 8px;
            font-size: 0.8125rem;
            color: #94a3b8;
        }
        .date-block div + div { margin-top: 0.25rem; }
        {{end}}
    </style>
</head>
<body>
    {{if .NeedsPassword}}` + gateHTML + `
    {{else}}` + navHTML + `
    <div class="container">
        <div class="player-wrap">
            <iframe id="player-frame" src="{{.EmbedURL}}" allowfullscreen allow="autoplay; fullscreen"></iframe>
        </div>
        <div class="player-bar">
            <button class="btn btn-secondary" id="fullscreen-btn">Fullscreen</button>
            <button class="btn btn-primary" id="share-btn" data-url="{{.PageURL}}" data-title="{{.Title}}">Share</button>
        </div>
        <h1 class="video-title">{{.Title}}</h1>
        <div class="video-meta">
            <span>{{.CreatedDate}}</span>
            <span>{{.Views}} views</span>
        </div>
        {{if .Hashtags}}
        <div class="hashtags">
            {{range .Hashtags}}<span class="hashtag">{{.}}</span>{{end}}
        </div>
        {{end}}
        {{if .Description}}
        <p class="description">{{.Description}}</p>
        {{end}}
        <div class="date-block">
            <div>Published on {{.PublishedAt}}</div>
            {{if .ShowUpdated}}<div>Last updated {{.UpdatedAt}}</div>{{end}}
        </div>
    </div>` + footerHTML + `
    <script nonce="{{.Nonce}}">
        (function() {
            var btn = document.getElementById('fullscreen-btn');
            var frame = document.getElementById('player-frame');
            if (!btn || !frame) return;
            btn.addEventListener('click', function() {
                if (frame.requestFullscreen) {
                    frame.requestFullscreen();
                } else if (frame.webkitRequestFullscreen) {
                    frame.webkitRequestFullscreen();
                }
            });
        })();
` + shareJS + `    </script>
    {{end}}
</body>
</html>`))

func (h *Handler) WatchPage(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	v, err := fetchVideo(r.Context(), h.db, videoID)
	if errors.Is(err, ErrNotFound) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("video: watch lookup failed", "video_id", videoID, "error", err)
		h.renderServerError(w, r)
		return
	}

	nonce := httputil.NonceFromContext(r.Context())

	if v.Protected() && !hasWatchAccess(r, h.watchSecret, v.ID) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := watchPageTemplate.Execute(w, watchPageData{
			Title:         v.Title,
			VideoID:       v.ID,
			NeedsPassword: true,
			Nonce:         nonce,
		}); err != nil {
			log.Printf("failed to render watch page: %v", err)
		}
		return
	}

	var views int64
	if err := h.db.QueryRow(r.Context(),
		`SELECT COUNT(*) FROM video_views WHERE video_id = $1`, v.ID,
	).Scan(&views); err != nil {
		slog.Error("video: view count failed", "video_id", v.ID, "error", err)
	}

	h.recordView(r, v.ID)

	bannerURL := h.absoluteURL(h.storage.PublicURL(v.BannerPath))
	pageURL := h.watchURL(v.ID)

	ld, err := json.Marshal(videoObjectLD{
		Context:      "https://schema.org",
		Type:         "VideoObject",
		Name:         v.Title,
		Description:  v.DescriptionText(),
		ThumbnailURL: bannerURL,
		UploadDate:   v.CreatedAt.UTC().Format(time.RFC3339),
		EmbedURL:     v.EmbedURL(),
		Keywords:     v.KeywordString(),
	})
	if err != nil {
		slog.Error("video: json-ld marshal failed", "video_id", v.ID, "error", err)
	}

	var description string
	if v.Description != nil {
		description = *v.Description
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := watchPageTemplate.Execute(w, watchPageData{
		Title:           v.Title,
		MetaDescription: v.DescriptionText(),
		Keywords:        v.KeywordString(),
		Description:     description,
		BannerURL:       bannerURL,
		PageURL:         pageURL,
		EmbedURL:        v.EmbedURL(),
		VideoID:         v.ID,
		Hashtags:        v.HashtagList(),
		CreatedDate:     formatDate(v.CreatedAt),
		PublishedAt:     formatDateTime(v.CreatedAt),
		UpdatedAt:       formatDateTime(v.UpdatedAt),
		ShowUpdated:     !v.UpdatedAt.Equal(v.CreatedAt),
		Views:           views,
		JSONLD:          template.JS(ld),
		Nonce:           nonce,
	}); err != nil {
		log.Printf("failed to render watch page: %v", err)
	}
}
