package manager

import (
	"context"

	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/storage"
	"go.uber.org/zap"
)

// GetLibraryStats counts episodes and downloads
func (m MediaManager) GetLibraryStats(ctx context.Context) (*storage.LibraryStats, error) {
	stats, err := m.storage.GetLibraryStats(ctx)
	if err != nil {
		logger.FromCtx(ctx).Errorw("failed to get library stats", zap.Error(err))
		return nil, err
	}

	return stats, nil
}
