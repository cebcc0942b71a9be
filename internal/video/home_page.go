package video

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"

	"github.com/streamhub/streamhub/internal/httputil"
)

type homePageVideo struct {
	ID        string
	Title     string
	BannerURL string
	Date      string
	Hashtags  []string
	Protected bool
}

type homePageData struct {
	Videos []homePageVideo
	Nonce  string
}

var homePageTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>StreamHub — Watch Videos Online</title>
    <meta name="description" content="Browse and watch the latest videos on StreamHub.">
    <style nonce="{{.Nonce}}">` + siteCSS + `
        .page-title { font-size: 1.375rem; font-weight: 600; margin-bottom: 1.25rem; }
    </style>
</head>
<body>` + navHTML + `
    <div class="container">
        <h1 class="page-title">Latest Videos</h1>
        {{if .Videos}}
        <div class="video-grid">
            {{range .Videos}}
            <a class="video-card" href="/watch/{{.ID}}">
                <img class="card-banner" src="{{.BannerURL}}" alt="{{.Title}}" loading="lazy">
                <div class="card-body">
                    <div class="card-title">{{.Title}}</div>
                    <div class="card-date">{{.Date}}{{if .Protected}} · Protected{{end}}</div>
                    {{if .Hashtags}}
                    <div class="hashtags">
                        {{range .Hashtags}}<span class="hashtag">{{.}}</span>{{end}}
                    </div>
                    {{end}}
                </div>
            </a>
            {{end}}
        </div>
        {{else}}
        <div class="empty-state">
            <h2>No videos yet</h2>
            <p>Check back soon for new content.</p>
        </div>
        {{end}}
    </div>` + footerHTML + `
</body>
</html>`))

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(r.Context(),
		`SELECT `+videoColumns+` FROM videos ORDER BY created_at DESC`)
	if err != nil {
		slog.Error("video: home listing failed", "error", err)
		h.renderServerError(w, r)
		return
	}
	defer rows.Close()

	var videos []homePageVideo
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Hashtags,
			&v.StreamtapeURL, &v.StreamtapeID, &v.BannerPath, &v.PasswordHash,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			slog.Error("video: home scan failed", "error", err)
			h.renderServerError(w, r)
			return
		}
		videos = append(videos, homePageVideo{
			ID:        v.ID,
			Title:     v.Title,
			BannerURL: h.storage.PublicURL(v.BannerPath),
			Date:      formatDate(v.CreatedAt),
			Hashtags:  v.HashtagList(),
			Protected: v.Protected(),
		})
	}
	if err := rows.Err(); err != nil {
		slog.Error("video: home listing failed", "error", err)
		h.renderServerError(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homePageTemplate.Execute(w, homePageData{
		Videos: videos,
		Nonce:  httputil.NonceFromContext(r.Context()),
	}); err != nil {
		log.Printf("failed to render home page: %v", err)
	}
}
