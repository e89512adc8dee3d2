package manager

import (
	"context"
	"path"
	"path/filepath"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/table"
	"go.uber.org/zap"
)

// Episode is an episode as presented to clients
type Episode struct {
	Number         int32  `json:"number"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RemoteVideoURL string `json:"remoteVideoUrl"`
	LocalVideoURL  string `json:"localVideoUrl"`
	PublicVideoURL string `json:"publicVideoUrl"`
	Watched        bool   `json:"watched"`
	HasVideo       bool   `json:"hasVideo"`
}

func (m MediaManager) toEpisode(e *model.Episode) Episode {
	return Episode{
		Number:         e.Number,
		Title:          e.Title,
		Description:    e.Description,
		RemoteVideoURL: e.RemoteVideoURL,
		LocalVideoURL:  e.LocalVideoURL,
		PublicVideoURL: path.Join("media", filepath.Base(e.LocalVideoURL)),
		Watched:        e.Watched,
		HasVideo:       m.fs.FileExists(m.destination(e)),
	}
}

func (m MediaManager) destination(e *model.Episode) string {
	return filepath.Join(m.library.MediaDir, e.LocalVideoURL)
}

// ListEpisodes lists unwatched episodes, or every episode when all is set
func (m MediaManager) ListEpisodes(ctx context.Context, all bool) ([]Episode, error) {
	log := logger.FromCtx(ctx)

	var where []sqlite.BoolExpression
	if !all {
		where = append(where, table.Episode.Watched.EQ(sqlite.Bool(false)))
	}

	episodes, err := m.storage.ListEpisodes(ctx, where...)
	if err != nil {
		log.Errorw("failed to list episodes", zap.Bool("all", all), zap.Error(err))
		return nil, err
	}

	result := make([]Episode, len(episodes))
	for i, e := range episodes {
		result[i] = m.toEpisode(e)
	}

	return result, nil
}

// GetEpisode finds an episode by number
func (m MediaManager) GetEpisode(ctx context.Context, number int32) (Episode, error) {
	e, err := m.storage.GetEpisode(ctx, number)
	if err != nil {
		return Episode{}, err
	}

	return m.toEpisode(e), nil
}

// MarkWatched flags an episode as watched
func (m MediaManager) MarkWatched(ctx context.Context, number int32) error {
	log := logger.FromCtx(ctx)

	err := m.storage.MarkEpisodeWatched(ctx, number)
	if err != nil {
		log.Debugw("failed to mark episode watched", zap.Int32("number", number), zap.Error(err))
		return err
	}

	log.Infow("episode watched", zap.Int32("number", number))
	return nil
}
