package sqlite

import (
	"context"
	"fmt"

	"github.com/kasuboski/tapas/pkg/storage"
)

// GetLibraryStats counts episodes and downloads by state
func (s *SQLite) GetLibraryStats(ctx context.Context) (*storage.LibraryStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &storage.LibraryStats{
		Downloads: storage.DownloadStats{
			ByState: make(map[storage.DownloadState]int),
		},
	}

	// aggregates are scanned by hand, jet needs a destination model per result shape
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN watched THEN 1 ELSE 0 END), 0)
		FROM episode
	`).Scan(&stats.Episodes.Total, &stats.Episodes.Watched)
	if err != nil {
		return nil, fmt.Errorf("failed to count episodes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT state, COUNT(id)
		FROM download
		GROUP BY state
		ORDER BY state
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count downloads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		stats.Downloads.ByState[storage.DownloadState(state)] = count
		stats.Downloads.Total += count
	}

	return stats, rows.Err()
}
