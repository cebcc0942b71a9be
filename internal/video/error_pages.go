package video

import (
	"html/template"
	"log"
	"net/http"

	"github.com/streamhub/streamhub/internal/httputil"
)

type errorPageData struct {
	Nonce string
}

var notFoundPageTemplate = template.Must(template.New("not-found").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Video Not Found — StreamHub</title>
    <style nonce="{{.Nonce}}">` + siteCSS + `
        .error-box {
            text-align: center;
            padding: 5rem 1rem;
        }
        .error-code {
            font-size: 4rem;
            font-weight: 700;
            color: var(--accent);
            margin-bottom: 0.5rem;
        }
        .error-box h1 { font-size: 1.5rem; margin-bottom: 0.75rem; }
        .error-box p { color: #94a3b8; margin-bottom: 1.5rem; }
    </style>
</head>
<body>` + navHTML + `
    <div class="container">
        <div class="error-box">
            <div class="error-code">404</div>
            <h1>Video not found</h1>
            <p>The video you are looking for does not exist or has been removed.</p>
            <a class="btn btn-primary" href="/">Back to Home</a>
        </div>
    </div>` + footerHTML + `
</body>
</html>`))

var serverErrorPageTemplate = template.Must(template.New("server-error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Something Went Wrong — StreamHub</title>
    <style nonce="{{.Nonce}}">` + siteCSS + `
        .error-box {
            text-align: center;
            padding: 5rem 1rem;
        }
        .error-code {
            font-size: 4rem;
            font-weight: 700;
            color: var(--accent);
            margin-bottom: 0.5rem;
        }
        .error-box h1 { font-size: 1.5rem; margin-bottom: 0.75rem; }
        .error-box p { color: #94a3b8; margin-bottom: 1.5rem; }
    </style>
</head>
<body>` + navHTML + `
    <div class="container">
        <div class="error-box">
            <div class="error-code">500</div>
            <h1>Something went wrong</h1>
            <p>An internal error occurred. Please try again later.</p>
            <a class="btn btn-primary" href="/">Back to Home</a>
        </div>
    </div>` + footerHTML + `
</body>
</html>`))

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	nonce := httputil.NonceFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := notFoundPageTemplate.Execute(w, errorPageData{Nonce: nonce}); err != nil {
		log.Printf("failed to render not found page: %v", err)
	}
}

func (h *Handler) renderServerError(w http.ResponseWriter, r *http.Request) {
	nonce := httputil.NonceFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := serverErrorPageTemplate.Execute(w, errorPageData{Nonce: nonce}); err != nil {
		log.Printf("failed to render server error page: %v", err)
	}
}
