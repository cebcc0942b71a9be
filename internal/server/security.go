package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/streamhub/streamhub/internal/httputil"
)

type SecurityConfig struct {
	BaseURL         string
	StorageEndpoint string
}

// securityHeaders attaches a per-request CSP nonce and the standard
// header set. Embed pages exist to be framed by other sites, so they
// skip the framing restrictions every other page gets.
func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := cfg.BaseURL != "" && hasHTTPS(cfg.BaseURL)

	imgSuffix := ""
	if cfg.StorageEndpoint != "" {
		imgSuffix = " " + cfg.StorageEndpoint
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce := httputil.GenerateNonce()
			ctx := httputil.ContextWithNonce(r.Context(), nonce)

			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			frameAncestors := "'self'"
			if strings.HasPrefix(r.URL.Path, "/embed/") {
				frameAncestors = "*"
			} else {
				w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			}

			csp := fmt.Sprintf(
				"default-src 'self'; img-src 'self' data:%s; script-src 'self' 'nonce-%s'; style-src 'self' 'nonce-%s'; connect-src 'self'; frame-src https://streamtape.com; frame-ancestors %s;",
				imgSuffix, nonce, nonce, frameAncestors,
			)
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasHTTPS(baseURL string) bool {
	return len(baseURL) >= 8 && baseURL[:8] == "https://"
}
