package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/storage"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/table"
)

// ListEpisodes lists episodes ordered by number, optionally filtered
func (s *SQLite) ListEpisodes(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.Episode, error) {
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode)

	if len(where) > 0 {
		stmt = stmt.WHERE(sqlite.AND(where...))
	}

	episodes := make([]*model.Episode, 0)
	err := stmt.ORDER_BY(table.Episode.Number.ASC()).QueryContext(ctx, s.db, &episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}

	return episodes, nil
}

// GetEpisode looks up an episode by its number
func (s *SQLite) GetEpisode(ctx context.Context, number int32) (*model.Episode, error) {
	stmt := table.Episode.
		SELECT(table.Episode.AllColumns).
		FROM(table.Episode).
		WHERE(table.Episode.Number.EQ(sqlite.Int32(number)))

	episode := new(model.Episode)
	err := stmt.QueryContext(ctx, s.db, episode)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get episode: %w", err)
	}

	return episode, nil
}

// UpsertEpisode inserts an episode or updates its metadata. An existing watched flag is kept.
func (s *SQLite) UpsertEpisode(ctx context.Context, episode model.Episode) error {
	stmt := table.Episode.
		INSERT(table.Episode.AllColumns).
		MODEL(episode).
		ON_CONFLICT(table.Episode.Number).
		DO_UPDATE(sqlite.SET(
			table.Episode.Title.SET(table.Episode.EXCLUDED.Title),
			table.Episode.Description.SET(table.Episode.EXCLUDED.Description),
			table.Episode.RemoteVideoURL.SET(table.Episode.EXCLUDED.RemoteVideoURL),
			table.Episode.LocalVideoURL.SET(table.Episode.EXCLUDED.LocalVideoURL),
			table.Episode.Watched.SET(table.Episode.Watched.OR(table.Episode.EXCLUDED.Watched)),
		))

	_, err := s.handleStatement(ctx, stmt)
	return err
}

// MarkEpisodeWatched sets the watched flag of an episode
func (s *SQLite) MarkEpisodeWatched(ctx context.Context, number int32) error {
	stmt := table.Episode.
		UPDATE(table.Episode.Watched).
		SET(sqlite.Bool(true)).
		WHERE(table.Episode.Number.EQ(sqlite.Int32(number)))

	return s.handleUpdate(ctx, stmt)
}
