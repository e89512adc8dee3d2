package storage

import (
	"context"
	"errors"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/machine"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/model"
)

var ErrNotFound = errors.New("not found in storage")

type Storage interface {
	RunMigrations(ctx context.Context) error
	EpisodeStorage
	DownloadStorage
	StatisticsStorage
}

// EpisodeStorage is the episode catalog. Episodes are only ever changed by an import or by being watched.
type EpisodeStorage interface {
	ListEpisodes(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.Episode, error)
	GetEpisode(ctx context.Context, number int32) (*model.Episode, error)
	UpsertEpisode(ctx context.Context, episode model.Episode) error
	MarkEpisodeWatched(ctx context.Context, number int32) error
}

type DownloadState string

const (
	DownloadStateStarted  DownloadState = "started"
	DownloadStateComplete DownloadState = "complete"
	DownloadStateFailed   DownloadState = "failed"
)

// Download records a transfer started for an episode. TraceFile is the handle returned by the launcher.
type Download model.Download

func (d Download) Machine() *machine.StateMachine[DownloadState] {
	return machine.New(DownloadState(d.State),
		machine.From(DownloadStateStarted).To(DownloadStateComplete, DownloadStateFailed),
	)
}

type DownloadStorage interface {
	CreateDownload(ctx context.Context, download Download) (int64, error)
	GetDownloadByTraceFile(ctx context.Context, traceFile string) (*Download, error)
	ListDownloads(ctx context.Context, where ...sqlite.BoolExpression) ([]*Download, error)
	UpdateDownloadState(ctx context.Context, id int64, state DownloadState) error
}
