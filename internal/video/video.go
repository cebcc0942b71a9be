// Package video implements the public pages, admin flows, and JSON API
// for StreamHub's video catalog.
package video

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/streamhub/streamhub/internal/database"
)

// ErrNotFound is returned when no video exists for the requested id.
var ErrNotFound = errors.New("video not found")

// Video is a catalog entry. Description, Hashtags, and PasswordHash are nil
// when the admin left them blank.
type Video struct {
	ID            string
	Title         string
	Description   *string
	Hashtags      *string
	StreamtapeURL string
	StreamtapeID  string
	BannerPath    string
	PasswordHash  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// newVideoID returns a 12-character URL-safe identifier.
func newVideoID() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ExtractStreamtapeID pulls the video id out of a Streamtape link. Embed
// links carry the id after /e/, other link styles carry it as the last
// path segment.
func ExtractStreamtapeID(rawURL string) string {
	if _, after, found := strings.Cut(rawURL, "/e/"); found {
		id, _, _ := strings.Cut(after, "/")
		return id
	}
	trimmed := strings.TrimRight(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// EmbedURL is the canonical Streamtape player address for this video.
func (v *Video) EmbedURL() string {
	return "https://streamtape.com/e/" + v.StreamtapeID + "/"
}

// HashtagList splits the stored hashtag string on commas, trimming
// whitespace and dropping empty entries while preserving order.
func (v *Video) HashtagList() []string {
	if v.Hashtags == nil {
		return nil
	}
	return splitHashtags(*v.Hashtags)
}

func splitHashtags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// KeywordString joins the hashtag list for meta keywords and JSON-LD.
func (v *Video) KeywordString() string {
	return strings.Join(v.HashtagList(), ", ")
}

// DescriptionText resolves the description shown on public pages. Videos
// without a stored description fall back to a standard line built from
// the title.
func (v *Video) DescriptionText() string {
	if v.Description != nil && *v.Description != "" {
		return *v.Description
	}
	return v.Title + " - Watch this amazing video on StreamHub"
}

// Protected reports whether a password must be entered before watching.
func (v *Video) Protected() bool {
	return v.PasswordHash != nil && *v.PasswordHash != ""
}

const videoColumns = `id, title, description, hashtags, streamtape_url, streamtape_id, banner_path, password_hash, created_at, updated_at`

func fetchVideo(ctx context.Context, db database.DBTX, id string) (*Video, error) {
	var v Video
	err := db.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, id,
	).Scan(
		&v.ID, &v.Title, &v.Description, &v.Hashtags, &v.StreamtapeURL,
		&v.StreamtapeID, &v.BannerPath, &v.PasswordHash, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", id, err)
	}
	return &v, nil
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}
