package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage"
	"go.uber.org/zap"
)

// ReconcileDownloads settles started downloads whose transfer has exited.
// A download whose trace file disappeared, or has not changed for staleAfter, is marked failed.
func (m MediaManager) ReconcileDownloads(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	downloads, err := m.ListDownloads(ctx, true)
	if err != nil {
		return err
	}

	var errs []error
	for _, d := range downloads {
		snapshot, err := m.Progress(ctx, d.TraceFile)
		if err == nil {
			if snapshot.Finished() || !m.stale(snapshot.TraceFile) {
				continue
			}

			log.Warnw("trace stopped changing for started download", zap.Int32("id", d.ID), zap.String("trace", d.TraceFile), zap.Duration("staleAfter", m.staleAfter))
			if err := m.storage.UpdateDownloadState(ctx, int64(d.ID), storage.DownloadStateFailed); err != nil {
				errs = append(errs, fmt.Errorf("download %d: %w", d.ID, err))
			}
			continue
		}

		if !errors.Is(err, progress.ErrTraceNotFound) && !errors.Is(err, ErrTraceOutsideDir) {
			errs = append(errs, fmt.Errorf("download %d: %w", d.ID, err))
			continue
		}

		log.Warnw("trace missing for started download", zap.Int32("id", d.ID), zap.String("trace", d.TraceFile))
		if err := m.storage.UpdateDownloadState(ctx, int64(d.ID), storage.DownloadStateFailed); err != nil {
			errs = append(errs, fmt.Errorf("download %d: %w", d.ID, err))
		}
	}

	return errors.Join(errs...)
}

// stale reports whether the trace has not been written to for longer than staleAfter
func (m MediaManager) stale(traceFile string) bool {
	if m.staleAfter <= 0 {
		return false
	}

	info, err := m.fs.Stat(traceFile)
	if err != nil {
		return false
	}

	return time.Since(info.ModTime()) > m.staleAfter
}

// RunReconciler reconciles downloads every interval until ctx is cancelled. A zero interval disables it.
func (m MediaManager) RunReconciler(ctx context.Context, interval time.Duration) error {
	log := logger.FromCtx(ctx)

	if interval <= 0 {
		log.Debug("download reconciler disabled")
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("download reconciler stopped")
			return nil
		case <-ticker.C:
			if err := m.ReconcileDownloads(ctx); err != nil {
				log.Errorw("failed to reconcile downloads", zap.Error(err))
			}
		}
	}
}
