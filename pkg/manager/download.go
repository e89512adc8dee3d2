package manager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/download"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/table"
	"github.com/kasuboski/tapas/pkg/trace"
	"go.uber.org/zap"
)

const progressPath = "/download/progress"

// DownloadResponse tells the client where to poll for progress
type DownloadResponse struct {
	Episode     int32  `json:"episode"`
	TraceFile   string `json:"traceFile"`
	ProgressURL string `json:"progressUrl"`
}

// ProgressURL is the relative url used to poll a trace file
func ProgressURL(traceFile string) string {
	return progressPath + "?" + url.Values{"tracefile": []string{traceFile}}.Encode()
}

// DownloadEpisode starts fetching an episode into the library and records the download
func (m MediaManager) DownloadEpisode(ctx context.Context, number int32) (DownloadResponse, error) {
	log := logger.FromCtx(ctx).With(zap.Int32("episode", number))

	episode, err := m.storage.GetEpisode(ctx, number)
	if err != nil {
		return DownloadResponse{}, err
	}

	if !filepath.IsLocal(filepath.FromSlash(episode.LocalVideoURL)) {
		return DownloadResponse{}, fmt.Errorf("%w: local video url %q leaves the media directory", download.ErrInvalidRequest, episode.LocalVideoURL)
	}

	destination := m.destination(episode)
	handle, err := m.launcher.StartDownload(ctx, episode.RemoteVideoURL, destination)
	if err != nil {
		return DownloadResponse{}, err
	}

	_, err = m.storage.CreateDownload(ctx, storage.Download{
		EpisodeNumber: episode.Number,
		TraceFile:     handle.String(),
		Destination:   destination,
		State:         string(storage.DownloadStateStarted),
	})
	if err != nil {
		// the transfer is already running, the client can still poll it
		log.Warnw("failed to record download", zap.String("trace", handle.String()), zap.Error(err))
	}

	return DownloadResponse{
		Episode:     episode.Number,
		TraceFile:   handle.String(),
		ProgressURL: ProgressURL(handle.String()),
	}, nil
}

// Progress reads the current progress of the transfer writing traceFile.
// A finished transfer also settles the state of its download record.
func (m MediaManager) Progress(ctx context.Context, traceFile string) (progress.Snapshot, error) {
	path, err := m.resolveTrace(traceFile)
	if err != nil {
		return progress.Snapshot{}, err
	}

	snapshot, err := m.estimator.CurrentFraction(ctx, path)
	if err != nil {
		return snapshot, err
	}

	if snapshot.Finished() {
		m.settleDownload(ctx, path, snapshot.State)
	}

	return snapshot, nil
}

func (m MediaManager) settleDownload(ctx context.Context, traceFile string, state trace.State) {
	log := logger.FromCtx(ctx).With(zap.String("trace", traceFile))

	d, err := m.storage.GetDownloadByTraceFile(ctx, traceFile)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warnw("failed to look up download", zap.Error(err))
		}
		return
	}

	if storage.DownloadState(d.State) != storage.DownloadStateStarted {
		return
	}

	to := storage.DownloadStateComplete
	if state == trace.StateFailed {
		to = storage.DownloadStateFailed
	}

	if err := m.storage.UpdateDownloadState(ctx, int64(d.ID), to); err != nil {
		log.Warnw("failed to update download state", zap.String("state", string(to)), zap.Error(err))
		return
	}

	log.Infow("download finished", zap.Int32("episode", d.EpisodeNumber), zap.String("state", string(to)))
}

// ListDownloads lists recorded downloads, only the unfinished ones when active is set
func (m MediaManager) ListDownloads(ctx context.Context, active bool) ([]*storage.Download, error) {
	var where []sqlite.BoolExpression
	if active {
		where = append(where, table.Download.State.EQ(sqlite.String(string(storage.DownloadStateStarted))))
	}

	return m.storage.ListDownloads(ctx, where...)
}
