package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/streamhub/streamhub/internal/database"
	"github.com/streamhub/streamhub/internal/docs"
	"github.com/streamhub/streamhub/internal/geoip"
	"github.com/streamhub/streamhub/internal/ratelimit"
	"github.com/streamhub/streamhub/internal/video"
	"github.com/streamhub/streamhub/internal/webhook"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Config wires the server's collaborators. Optional fields may stay nil
// and the matching feature switches off.
type Config struct {
	DB               database.DBTX
	Pinger           Pinger
	Storage          video.ObjectStorage
	BannerDir        string // serve banners from this directory when set
	BaseURL          string
	WatchSecret      string
	S3PublicEndpoint string
	GeoResolver      *geoip.Resolver
	PublishNotifier  video.PublishNotifier
	DeleteNotifier   video.DeleteNotifier
	WebhookClient    *webhook.Client
}

type Server struct {
	router       chi.Router
	pinger       Pinger
	videoHandler *video.Handler
	bannerDir    string
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:         cfg.BaseURL,
		StorageEndpoint: cfg.S3PublicEndpoint,
	}))

	s := &Server{router: r, pinger: cfg.Pinger, bannerDir: cfg.BannerDir}

	if cfg.DB != nil {
		if cfg.WatchSecret == "" {
			log.Fatal("WATCH_TOKEN_SECRET is required; set the environment variable")
		}

		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:8000"
		}

		secureCookies := strings.HasPrefix(baseURL, "https://")
		s.videoHandler = video.NewHandler(cfg.DB, cfg.Storage, baseURL, cfg.WatchSecret, secureCookies)
		if cfg.GeoResolver != nil {
			s.videoHandler.SetGeoResolver(cfg.GeoResolver)
		}
		if cfg.PublishNotifier != nil {
			s.videoHandler.SetPublishNotifier(cfg.PublishNotifier)
		}
		if cfg.DeleteNotifier != nil {
			s.videoHandler.SetDeleteNotifier(cfg.DeleteNotifier)
		}
		if cfg.WebhookClient != nil {
			s.videoHandler.SetWebhookClient(cfg.WebhookClient)
		}
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/docs", docs.HandleDocs)
	s.router.Get("/docs/openapi.yaml", docs.HandleSpec)

	if s.bannerDir != "" {
		banners := newBannerFileServer(s.bannerDir)
		s.router.Handle("/static/banners/*", http.StripPrefix("/static/banners/", banners))
	}

	if s.videoHandler != nil {
		s.router.Get("/", s.videoHandler.HomePage)
		s.router.Get("/watch/{id}", s.videoHandler.WatchPage)
		s.router.Get("/embed/{id}", s.videoHandler.EmbedPage)
		s.router.Get("/oembed", s.videoHandler.OEmbed)

		unlockLimiter := ratelimit.NewLimiter(0.5, 5)
		s.router.With(unlockLimiter.Middleware).Post("/watch/{id}/unlock", s.videoHandler.Unlock)

		s.router.Route("/admin", func(r chi.Router) {
			r.Get("/", s.videoHandler.AdminPage)
			r.Post("/upload", s.videoHandler.Create)
			r.Get("/edit/{id}", s.videoHandler.EditPage)
			r.Post("/edit/{id}", s.videoHandler.Update)
			r.Post("/delete/{id}", s.videoHandler.Delete)
		})

		apiLimiter := ratelimit.NewLimiter(10, 30)
		s.router.Route("/api", func(r chi.Router) {
			r.Use(apiLimiter.Middleware)
			r.Get("/videos", s.videoHandler.List)
			r.Get("/video/{id}", s.videoHandler.Get)
			r.Get("/stats", s.videoHandler.Stats)
			r.Get("/hashtags", s.videoHandler.Hashtags)
			r.Get("/limits", s.videoHandler.Limits)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"healthy","service":"StreamHub Video Platform","version":"1.0.0","message":"All systems operational"}`))
}
