package video

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"

	"github.com/streamhub/streamhub/internal/httputil"
)

type adminVideoRow struct {
	ID        string
	Title     string
	BannerURL string
	Date      string
	Views     int64
	Protected bool
}

type adminPageData struct {
	TotalVideos    int
	TotalViews     int64
	UniqueHashtags int
	Videos         []adminVideoRow
	Form           adminFormValues
	FormError      string
	Nonce          string
}

var adminPageTemplate = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Admin — StreamHub</title>
    <style nonce="{{.Nonce}}">` + siteCSS + `
        .stats-row {
            display: flex;
            gap: 1rem;
            flex-wrap: wrap;
            margin-bottom: 2rem;
        }
        .stat-card {
            flex: 1;
            min-width: 10rem;
            background: #1e293b;
            border-radius: 8px;
            padding: 1.25rem 1.75rem;
        }
        .stat-value {
            font-size: 2rem;
            font-weight: 700;
            color: var(--accent);
        }
        .stat-label {
            color: #94a3b8;
            font-size: 0.85rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
        }
        .panel {
            background: #1e293b;
            border-radius: 8px;
            padding: 1.5rem;
            margin-bottom: 2rem;
        }
        .panel h2 { margin: 0 0 1rem; font-size: 1.2rem; }
        .admin-table { width: 100%; border-collapse: collapse; }
        .admin-table th {
            text-align: left;
            color: #94a3b8;
            font-size: 0.85rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            padding: 0.5rem 0.75rem;
            border-bottom: 1px solid #334155;
        }
        .admin-table td {
            padding: 0.75rem;
            border-bottom: 1px solid #334155;
            vertical-align: middle;
        }
        .table-banner {
            width: 6rem;
            aspect-ratio: 16 / 9;
            object-fit: cover;
            border-radius: 4px;
            display: block;
        }
        .badge {
            display: inline-block;
            background: #334155;
            color: #e2e8f0;
            border-radius: 9999px;
            padding: 0.1rem 0.6rem;
            font-size: 0.75rem;
            margin-left: 0.5rem;
        }
        .actions { display: flex; gap: 0.5rem; }
        .actions form { margin: 0; }
    </style>
</head>
<body>` + navHTML + `
    <div class="container">
        <h1 class="page-title">Admin Dashboard</h1>
        <div class="stats-row">
            <div class="stat-card">
                <div class="stat-value">{{.TotalVideos}}</div>
                <div class="stat-label">Videos</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.TotalViews}}</div>
                <div class="stat-label">Total Views</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.UniqueHashtags}}</div>
                <div class="stat-label">Hashtags</div>
            </div>
        </div>
        {{if .FormError}}<div class="form-error">{{.FormError}}</div>{{end}}
        <div class="panel">
            <h2>Upload New Video</h2>
            <form method="post" action="/admin/upload" enctype="multipart/form-data">
                <div class="form-group">
                    <label for="title">Title</label>
                    <input type="text" id="title" name="title" value="{{.Form.Title}}" required>
                </div>
                <div class="form-group">
                    <label for="streamtape_url">Streamtape URL</label>
                    <input type="text" id="streamtape_url" name="streamtape_url" value="{{.Form.StreamtapeURL}}" placeholder="https://streamtape.com/v/abc123/" required>
                </div>
                <div class="form-group">
                    <label for="description">Description</label>
                    <textarea id="description" name="description" rows="4">{{.Form.Description}}</textarea>
                </div>
                <div class="form-group">
                    <label for="hashtags">Hashtags</label>
                    <input type="text" id="hashtags" name="hashtags" value="{{.Form.Hashtags}}">
                    <p class="form-hint">Comma separated, for example: #music, #live</p>
                </div>
                <div class="form-group">
                    <label for="password">Watch password</label>
                    <input type="password" id="password" name="password" maxlength="72" autocomplete="new-password">
                    <p class="form-hint">Leave blank to keep the video public.</p>
                </div>
                <div class="form-group">
                    <label for="banner">Banner image</label>
                    <input type="file" id="banner" name="banner" accept="image/*" required>
                </div>
                <button type="submit" class="btn btn-primary">Upload Video</button>
            </form>
        </div>
        <div class="panel">
            <h2>Videos</h2>
            {{if .Videos}}
            <table class="admin-table">
                <thead>
                    <tr>
                        <th>Banner</th>
                        <th>Title</th>
                        <th>Published</th>
                        <th>Views</th>
                        <th>Actions</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Videos}}
                    <tr>
                        <td><img class="table-banner" src="{{.BannerURL}}" alt=""></td>
                        <td><a href="/watch/{{.ID}}">{{.Title}}</a>{{if .Protected}}<span class="badge">Protected</span>{{end}}</td>
                        <td>{{.Date}}</td>
                        <td>{{.Views}}</td>
                        <td>
                            <div class="actions">
                                <a class="btn btn-secondary" href="/admin/edit/{{.ID}}">Edit</a>
                                <form class="delete-form" method="post" action="/admin/delete/{{.ID}}">
                                    <button type="submit" class="btn btn-danger">Delete</button>
                                </form>
                            </div>
                        </td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            {{else}}
            <div class="empty-state">
                <h2>No videos yet</h2>
                <p>Upload your first video with the form above.</p>
            </div>
            {{end}}
        </div>
    </div>` + footerHTML + `
    <script nonce="{{.Nonce}}">
        (function () {
            document.querySelectorAll('.delete-form').forEach(function (form) {
                form.addEventListener('submit', function (e) {
                    if (!confirm('Delete this video? This cannot be undone.')) {
                        e.preventDefault();
                    }
                });
            });
        })();
    </script>
</body>
</html>`))

// renderAdminPage rebuilds the dashboard around the given form state so
// failed submissions come back with the fields still filled in.
func (h *Handler) renderAdminPage(w http.ResponseWriter, r *http.Request, status int, form adminFormValues, formError string) {
	rows, err := h.db.Query(r.Context(),
		`SELECT v.id, v.title, v.hashtags, v.banner_path, v.password_hash, v.created_at,
		    COUNT(vw.id) AS views
		 FROM videos v
		 LEFT JOIN video_views vw ON vw.video_id = v.id
		 GROUP BY v.id, v.title, v.hashtags, v.banner_path, v.password_hash, v.created_at
		 ORDER BY v.created_at DESC`)
	if err != nil {
		slog.Error("video: failed to load admin dashboard", "error", err)
		h.renderServerError(w, r)
		return
	}
	defer rows.Close()

	data := adminPageData{
		Form:      form,
		FormError: formError,
		Nonce:     httputil.NonceFromContext(r.Context()),
	}
	tagSet := make(map[string]bool)
	for rows.Next() {
		var v Video
		var views int64
		if err := rows.Scan(&v.ID, &v.Title, &v.Hashtags, &v.BannerPath, &v.PasswordHash, &v.CreatedAt, &views); err != nil {
			slog.Error("video: failed to scan admin row", "error", err)
			h.renderServerError(w, r)
			return
		}
		for _, tag := range v.HashtagList() {
			tagSet[tag] = true
		}
		data.TotalViews += views
		data.Videos = append(data.Videos, adminVideoRow{
			ID:        v.ID,
			Title:     v.Title,
			BannerURL: h.absoluteURL(h.storage.PublicURL(v.BannerPath)),
			Date:      formatDate(v.CreatedAt),
			Views:     views,
			Protected: v.Protected(),
		})
	}
	if err := rows.Err(); err != nil {
		slog.Error("video: failed to load admin dashboard", "error", err)
		h.renderServerError(w, r)
		return
	}
	data.TotalVideos = len(data.Videos)
	data.UniqueHashtags = len(tagSet)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := adminPageTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render admin page: %v", err)
	}
}

// AdminPage serves the management dashboard with a blank upload form.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	h.renderAdminPage(w, r, http.StatusOK, adminFormValues{}, "")
}

type editPageData struct {
	VideoID   string
	Title     string
	Form      adminFormValues
	FormError string
	BannerURL string
	EmbedURL  string
	WatchURL  string
	Protected bool
	Published string
	Updated   string
	Nonce     string
}

var editPageTemplate = template.Must(template.New("edit-video").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Edit Video — StreamHub</title>
    <style nonce="{{.Nonce}}">` + siteCSS + `
        .panel {
            background: #1e293b;
            border-radius: 8px;
            padding: 1.5rem;
            margin-bottom: 2rem;
        }
        .panel h2 { margin: 0 0 1rem; font-size: 1.2rem; }
        .edit-grid {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 2rem;
            align-items: start;
        }
        @media (max-width: 56rem) {
            .edit-grid { grid-template-columns: 1fr; }
        }
        .preview-player {
            position: relative;
            aspect-ratio: 16 / 9;
            background: #000;
            border-radius: 6px;
            overflow: hidden;
            margin-bottom: 1rem;
        }
        .preview-player iframe {
            position: absolute;
            inset: 0;
            width: 100%;
            height: 100%;
            border: 0;
        }
        .preview-meta { color: #94a3b8; font-size: 0.9rem; margin: 0.25rem 0; }
        .preview-meta a { color: var(--accent); }
        .current-banner {
            display: block;
            max-width: 15rem;
            border-radius: 6px;
            margin-top: 0.5rem;
        }
    </style>
</head>
<body>` + navHTML + `
    <div class="container">
        <h1 class="page-title">Edit Video</h1>
        {{if .FormError}}<div class="form-error">{{.FormError}}</div>{{end}}
        <div class="edit-grid">
            <div class="panel">
                <h2>Details</h2>
                <form method="post" action="/admin/edit/{{.VideoID}}" enctype="multipart/form-data">
                    <div class="form-group">
                        <label for="title">Title</label>
                        <input type="text" id="title" name="title" value="{{.Form.Title}}" required>
                    </div>
                    <div class="form-group">
                        <label for="streamtape_url">Streamtape URL</label>
                        <input type="text" id="streamtape_url" name="streamtape_url" value="{{.Form.StreamtapeURL}}" required>
                    </div>
                    <div class="form-group">
                        <label for="description">Description</label>
                        <textarea id="description" name="description" rows="4">{{.Form.Description}}</textarea>
                    </div>
                    <div class="form-group">
                        <label for="hashtags">Hashtags</label>
                        <input type="text" id="hashtags" name="hashtags" value="{{.Form.Hashtags}}">
                        <p class="form-hint">Comma separated, for example: #music, #live</p>
                    </div>
                    <div class="form-group">
                        <label for="password">Watch password</label>
                        <input type="password" id="password" name="password" maxlength="72" autocomplete="new-password">
                        {{if .Protected}}
                        <p class="form-hint">This video is password protected. Enter a new password, or leave blank to make it public.</p>
                        {{else}}
                        <p class="form-hint">Leave blank to keep the video public.</p>
                        {{end}}
                    </div>
                    <div class="form-group">
                        <label for="banner">Banner image</label>
                        <input type="file" id="banner" name="banner" accept="image/*">
                        <p class="form-hint">Leave empty to keep the current banner.</p>
                        <img class="current-banner" src="{{.BannerURL}}" alt="Current banner">
                    </div>
                    <button type="submit" class="btn btn-primary">Save Changes</button>
                    <a class="btn btn-secondary" href="/admin">Cancel</a>
                </form>
            </div>
            <div class="panel">
                <h2>Preview</h2>
                <div class="preview-player">
                    <iframe src="{{.EmbedURL}}" allowfullscreen allow="autoplay; fullscreen"></iframe>
                </div>
                <p class="preview-meta">{{.Title}}</p>
                <p class="preview-meta">Published {{.Published}}</p>
                <p class="preview-meta">Last updated {{.Updated}}</p>
                <p class="preview-meta">Public link: <a href="{{.WatchURL}}">{{.WatchURL}}</a></p>
            </div>
        </div>
    </div>` + footerHTML + `
</body>
</html>`))

// renderEditPage shows the stored video in the preview pane while the
// form itself carries whatever values the admin last submitted.
func (h *Handler) renderEditPage(w http.ResponseWriter, r *http.Request, status int, v *Video, form adminFormValues, formError string) {
	data := editPageData{
		VideoID:   v.ID,
		Title:     v.Title,
		Form:      form,
		FormError: formError,
		BannerURL: h.absoluteURL(h.storage.PublicURL(v.BannerPath)),
		EmbedURL:  v.EmbedURL(),
		WatchURL:  h.watchURL(v.ID),
		Protected: v.Protected(),
		Published: formatDateTime(v.CreatedAt),
		Updated:   formatDateTime(v.UpdatedAt),
		Nonce:     httputil.NonceFromContext(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := editPageTemplate.Execute(w, data); err != nil {
		log.Printf("failed to render edit page: %v", err)
	}
}
