package sqlite

import (
	"context"
	"testing"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/storage"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEpisodes(t *testing.T, ctx context.Context, store storage.Storage) []model.Episode {
	episodes := []model.Episode{
		{Number: 2, Title: "Blocks", Description: "closures", RemoteVideoURL: "http://x/002.mp4", LocalVideoURL: "media/002.mp4"},
		{Number: 1, Title: "Binary Literals", RemoteVideoURL: "http://x/001.mp4", LocalVideoURL: "media/001.mp4", Watched: true},
		{Number: 3, Title: "Enumerators", RemoteVideoURL: "http://x/003.mp4", LocalVideoURL: "media/003.mp4"},
	}

	for _, e := range episodes {
		require.NoError(t, store.UpsertEpisode(ctx, e))
	}

	return episodes
}

func TestEpisodeStorage_ListEpisodes(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)
	seeded := seedEpisodes(t, ctx, store)

	t.Run("all ordered by number", func(t *testing.T) {
		got, err := store.ListEpisodes(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, &seeded[1], got[0])
		assert.Equal(t, &seeded[0], got[1])
		assert.Equal(t, &seeded[2], got[2])
	})

	t.Run("unwatched", func(t *testing.T) {
		got, err := store.ListEpisodes(ctx, table.Episode.Watched.EQ(sqlite.Bool(false)))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int32(2), got[0].Number)
		assert.Equal(t, int32(3), got[1].Number)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := initSqlite(t, ctx).ListEpisodes(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestEpisodeStorage_GetEpisode(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)
	seeded := seedEpisodes(t, ctx, store)

	t.Run("found", func(t *testing.T) {
		got, err := store.GetEpisode(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, &seeded[2], got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.GetEpisode(ctx, 404)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestEpisodeStorage_UpsertEpisode(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)
	seedEpisodes(t, ctx, store)

	t.Run("updates metadata", func(t *testing.T) {
		err := store.UpsertEpisode(ctx, model.Episode{Number: 2, Title: "Blocks, Procs and Lambdas", RemoteVideoURL: "http://y/002.mp4", LocalVideoURL: "media/002.mp4"})
		require.NoError(t, err)

		got, err := store.GetEpisode(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Blocks, Procs and Lambdas", got.Title)
		assert.Equal(t, "http://y/002.mp4", got.RemoteVideoURL)
		assert.Empty(t, got.Description)
	})

	t.Run("keeps watched flag", func(t *testing.T) {
		err := store.UpsertEpisode(ctx, model.Episode{Number: 1, Title: "Binary Literals", RemoteVideoURL: "http://x/001.mp4", LocalVideoURL: "media/001.mp4"})
		require.NoError(t, err)

		got, err := store.GetEpisode(ctx, 1)
		require.NoError(t, err)
		assert.True(t, got.Watched)
	})
}

func TestEpisodeStorage_MarkEpisodeWatched(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)
	seedEpisodes(t, ctx, store)

	t.Run("marks watched", func(t *testing.T) {
		require.NoError(t, store.MarkEpisodeWatched(ctx, 3))

		got, err := store.GetEpisode(ctx, 3)
		require.NoError(t, err)
		assert.True(t, got.Watched)
	})

	t.Run("already watched", func(t *testing.T) {
		assert.NoError(t, store.MarkEpisodeWatched(ctx, 1))
	})

	t.Run("not found", func(t *testing.T) {
		err := store.MarkEpisodeWatched(ctx, 99)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
