package video

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/streamhub/streamhub/internal/database"
	"github.com/streamhub/streamhub/internal/httputil"
)

type hashtagItem struct {
	Hashtag    string `json:"hashtag"`
	VideoCount int    `json:"video_count"`
}

// collectHashtags tallies how many videos use each hashtag. A tag repeated
// within a single video's list counts once.
func collectHashtags(ctx context.Context, db database.DBTX) (map[string]int, error) {
	rows, err := db.Query(ctx, `SELECT hashtags FROM videos WHERE hashtags IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		for _, tag := range splitHashtags(raw) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	return counts, rows.Err()
}

// Hashtags responds with every hashtag in use and its video count, most
// used first.
func (h *Handler) Hashtags(w http.ResponseWriter, r *http.Request) {
	counts, err := collectHashtags(r.Context(), h.db)
	if err != nil {
		slog.Error("video: failed to collect hashtags", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list hashtags")
		return
	}

	items := make([]hashtagItem, 0, len(counts))
	for tag, n := range counts {
		items = append(items, hashtagItem{Hashtag: tag, VideoCount: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].VideoCount != items[j].VideoCount {
			return items[i].VideoCount > items[j].VideoCount
		}
		return items[i].Hashtag < items[j].Hashtag
	})

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"count":    len(items),
		"hashtags": items,
	})
}
