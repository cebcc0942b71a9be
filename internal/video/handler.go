package video

import (
	"context"
	"strings"
	"time"

	"github.com/streamhub/streamhub/internal/database"
	"github.com/streamhub/streamhub/internal/geoip"
	"github.com/streamhub/streamhub/internal/webhook"
)

// ObjectStorage stores processed banner images addressable by a public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]time.Time, error)
	PublicURL(key string) string
}

// PublishNotifier is told when a video goes live.
type PublishNotifier interface {
	VideoPublished(ctx context.Context, title, watchURL string) error
}

// DeleteNotifier is told when a video is removed.
type DeleteNotifier interface {
	VideoDeleted(ctx context.Context, title string) error
}

type Handler struct {
	db              database.DBTX
	storage         ObjectStorage
	baseURL         string
	watchSecret     string
	secureCookies   bool
	geoResolver     *geoip.Resolver
	publishNotifier PublishNotifier
	deleteNotifier  DeleteNotifier
	webhookClient   *webhook.Client
}

func NewHandler(db database.DBTX, s ObjectStorage, baseURL string, watchSecret string, secureCookies bool) *Handler {
	return &Handler{
		db:            db,
		storage:       s,
		baseURL:       baseURL,
		watchSecret:   watchSecret,
		secureCookies: secureCookies,
	}
}

func (h *Handler) SetGeoResolver(r *geoip.Resolver) {
	h.geoResolver = r
}

func (h *Handler) SetPublishNotifier(n PublishNotifier) {
	h.publishNotifier = n
}

func (h *Handler) SetDeleteNotifier(n DeleteNotifier) {
	h.deleteNotifier = n
}

func (h *Handler) SetWebhookClient(c *webhook.Client) {
	h.webhookClient = c
}

func (h *Handler) watchURL(videoID string) string {
	return h.baseURL + "/watch/" + videoID
}

// absoluteURL resolves store-relative paths, such as local banner
// paths, against the configured base URL. Already-absolute URLs pass
// through untouched.
func (h *Handler) absoluteURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "/") {
		return h.baseURL + pathOrURL
	}
	return pathOrURL
}
