package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/streamhub/streamhub/internal/database"
)

// orphanMinAge keeps the purge away from banners whose upload is still
// in flight. An object counts as orphaned only once it has sat in
// storage this long with no row referencing it.
const orphanMinAge = 1 * time.Hour

// PurgeOrphanedBanners deletes stored banner objects no video references
// anymore. Failed background deletes and crashed uploads leave these
// behind.
func PurgeOrphanedBanners(ctx context.Context, db database.DBTX, storage ObjectStorage) {
	objects, err := storage.List(ctx)
	if err != nil {
		slog.Error("cleanup: failed to list banner objects", "error", err)
		return
	}
	if len(objects) == 0 {
		return
	}

	rows, err := db.Query(ctx, `SELECT banner_path FROM videos`)
	if err != nil {
		slog.Error("cleanup: failed to query banner paths", "error", err)
		return
	}
	defer rows.Close()

	referenced := make(map[string]bool)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			// A partial reference set must never get live banners deleted.
			slog.Error("cleanup: failed to scan banner path", "error", err)
			return
		}
		referenced[path] = true
	}
	if err := rows.Err(); err != nil {
		slog.Error("cleanup: row iteration error", "error", err)
		return
	}

	cutoff := time.Now().Add(-orphanMinAge)
	for key, modified := range objects {
		if referenced[key] || modified.After(cutoff) {
			continue
		}
		if err := deleteWithRetry(ctx, storage, key, 3); err != nil {
			slog.Error("cleanup: failed to delete orphaned banner", "key", key, "error", err)
			continue
		}
		slog.Info("cleanup: deleted orphaned banner", "key", key)
	}
}

// StartCleanupLoop runs PurgeOrphanedBanners on a fixed interval until
// the context is canceled.
func StartCleanupLoop(ctx context.Context, db database.DBTX, storage ObjectStorage, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("cleanup: shutting down")
				return
			case <-ticker.C:
				PurgeOrphanedBanners(ctx, db, storage)
			}
		}
	}()
}
