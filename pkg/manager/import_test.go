package manager

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodeYAML = `
episodes:
  - number: 1
    title: Binary Literals
    description: Writing numbers in binary
    remoteVideoUrl: http://x/001-binary-literals.mp4
    localVideoUrl: media/001.mp4
  - number: 2
    title: Café au lait
    remoteVideoUrl: http://x/download?id=2
    watched: true
`

func TestParseEpisodeFile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ParseEpisodeFile(strings.NewReader(episodeYAML))
		require.NoError(t, err)
		assert.Equal(t, []ImportEpisodeRequest{
			{
				Number:         1,
				Title:          "Binary Literals",
				Description:    "Writing numbers in binary",
				RemoteVideoURL: "http://x/001-binary-literals.mp4",
				LocalVideoURL:  "media/001.mp4",
			},
			{
				Number:         2,
				Title:          "Café au lait",
				RemoteVideoURL: "http://x/download?id=2",
				Watched:        true,
			},
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParseEpisodeFile(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseEpisodeFile(strings.NewReader("episodes:\n  - number: 1\n    tittle: typo\n"))
		assert.Error(t, err)
	})
}

func TestMediaManager_ImportEpisodes(t *testing.T) {
	ctx := context.Background()

	t.Run("stores episodes", func(t *testing.T) {
		env := newTestEnv(t)
		requests, err := ParseEpisodeFile(strings.NewReader(episodeYAML))
		require.NoError(t, err)

		n, err := env.manager.ImportEpisodes(ctx, requests)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		second, err := env.manager.GetEpisode(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "media/002-cafe-au-lait.mp4", second.LocalVideoURL)
		assert.True(t, second.Watched)

		unwatched, err := env.manager.ListEpisodes(ctx, false)
		require.NoError(t, err)
		require.Len(t, unwatched, 1)
		assert.Equal(t, int32(1), unwatched[0].Number)
	})

	t.Run("invalid request stores nothing", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.manager.ImportEpisodes(ctx, []ImportEpisodeRequest{
			{Number: 1, Title: "ok", RemoteVideoURL: "http://x/1.mp4"},
			{Number: 2, Title: "bad url", RemoteVideoURL: "not a url"},
		})
		assert.Error(t, err)

		all, err := env.manager.ListEpisodes(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("local video url must stay in the library", func(t *testing.T) {
		env := newTestEnv(t)

		for _, local := range []string{"../../x.mp4", "/etc/x.mp4", "media/../../x.mp4"} {
			_, err := env.manager.ImportEpisodes(ctx, []ImportEpisodeRequest{
				{Number: 1, Title: "one", RemoteVideoURL: "http://x/1.mp4", LocalVideoURL: local},
			})
			assert.Error(t, err, local)
		}

		n, err := env.manager.ImportEpisodes(ctx, []ImportEpisodeRequest{
			{Number: 1, Title: "one", RemoteVideoURL: "http://x/1.mp4", LocalVideoURL: "media/sub/../1.mp4"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("duplicate numbers", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.manager.ImportEpisodes(ctx, []ImportEpisodeRequest{
			{Number: 1, Title: "one", RemoteVideoURL: "http://x/1.mp4"},
			{Number: 1, Title: "again", RemoteVideoURL: "http://x/1.mp4"},
		})
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestDefaultLocalVideoURL(t *testing.T) {
	tests := []struct {
		name string
		in   ImportEpisodeRequest
		want string
	}{
		{name: "extension from url", in: ImportEpisodeRequest{Number: 5, Title: "Hash Defaults", RemoteVideoURL: "http://x/5.MOV"}, want: "media/005-hash-defaults.mov"},
		{name: "no extension", in: ImportEpisodeRequest{Number: 12, Title: "Ördered   Hashes!", RemoteVideoURL: "http://x/get?id=12"}, want: "media/012-ordered-hashes.mp4"},
		{name: "no usable title", in: ImportEpisodeRequest{Number: 300, Title: "!!!", RemoteVideoURL: "http://x/300.mp4"}, want: "media/300.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultLocalVideoURL(tt.in))
		})
	}
}
