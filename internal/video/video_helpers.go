package video

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mssola/useragent"
	"github.com/streamhub/streamhub/internal/webhook"
)

func (h *Handler) dispatchWebhook(event webhook.Event) {
	if h.webhookClient == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.webhookClient.Dispatch(ctx, event); err != nil {
			slog.Error("webhook: dispatch failed", "event", event.Name, "error", err)
		}
	}()
}

func (h *Handler) notifyPublished(title, videoID string) {
	if h.publishNotifier == nil {
		return
	}
	watchURL := h.watchURL(videoID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.publishNotifier.VideoPublished(ctx, title, watchURL); err != nil {
			slog.Error("video: publish notification failed", "video_id", videoID, "error", err)
		}
	}()
}

func (h *Handler) notifyDeleted(title, videoID string) {
	if h.deleteNotifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.deleteNotifier.VideoDeleted(ctx, title); err != nil {
			slog.Error("video: delete notification failed", "video_id", videoID, "error", err)
		}
	}()
}

// discardBanner removes a banner object nothing references anymore,
// in the background so request handling never waits on storage.
func (h *Handler) discardBanner(key string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := deleteWithRetry(ctx, h.storage, key, 3); err != nil {
			slog.Error("video: banner delete failed", "key", key, "error", err)
		}
	}()
}

func deleteWithRetry(ctx context.Context, storage ObjectStorage, key string, maxAttempts int) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		lastErr = storage.Delete(ctx, key)
		if lastErr == nil {
			return nil
		}
		slog.Error("storage: delete attempt failed", "attempt", attempt+1, "max_attempts", maxAttempts, "key", key, "error", lastErr)
	}
	return fmt.Errorf("all %d delete attempts failed for %s: %w", maxAttempts, key, lastErr)
}

func viewerHash(ip, userAgent string) string {
	h := sha256.Sum256([]byte(ip + "|" + userAgent))
	return fmt.Sprintf("%x", h[:8])
}

// clientIP is the viewer's address for hashing and geo lookups: the
// first X-Forwarded-For entry behind a proxy, else the bare RemoteAddr
// host. The port is dropped so one viewer is one address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func categorizeReferrer(referer string) string {
	if referer == "" {
		return "Direct"
	}
	u, err := url.Parse(referer)
	if err != nil || u.Host == "" {
		return "Direct"
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "mail.google.") || strings.Contains(host, "outlook.") || strings.Contains(host, "mail.proton."):
		return "Email"
	case strings.Contains(host, "slack.com"):
		return "Slack"
	case strings.Contains(host, "twitter.com") || host == "x.com" || host == "t.co":
		return "Twitter"
	case strings.Contains(host, "linkedin.com") || host == "lnkd.in":
		return "LinkedIn"
	case strings.Contains(host, "facebook.com") || host == "fb.me":
		return "Facebook"
	default:
		return "Other"
	}
}

func parseBrowser(rawUA string) string {
	if rawUA == "" {
		return "Other"
	}
	ua := useragent.New(rawUA)
	if ua.Bot() {
		return "Bot"
	}
	// Chromium Edge identifies as Chrome plus an Edg token.
	if strings.Contains(rawUA, "Edg/") || strings.Contains(rawUA, "Edge/") {
		return "Edge"
	}
	name, _ := ua.Browser()
	switch name {
	case "Chrome", "Chromium":
		return "Chrome"
	case "Safari":
		return "Safari"
	case "Firefox":
		return "Firefox"
	case "Opera":
		return "Opera"
	case "":
		return "Other"
	default:
		return name
	}
}

func parseDevice(rawUA string) string {
	if rawUA == "" {
		return "Desktop"
	}
	ua := useragent.New(rawUA)
	if ua.Bot() {
		return "Bot"
	}
	if strings.Contains(rawUA, "iPad") {
		return "Tablet"
	}
	// Android tablets carry the Android token without Mobile.
	if strings.Contains(rawUA, "Android") && !strings.Contains(rawUA, "Mobile") {
		return "Tablet"
	}
	if ua.Mobile() {
		return "Mobile"
	}
	return "Desktop"
}
