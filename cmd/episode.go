package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/manager"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var listAll bool

// episodeCmd groups the episode catalog commands
var episodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "manage the episode catalog",
}

var episodeListCmd = &cobra.Command{
	Use:   "list",
	Short: "list unwatched episodes",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		episodes, err := m.ListEpisodes(ctx, listAll)
		if err != nil {
			log.Fatalw("failed to list episodes", zap.Error(err))
		}

		for _, e := range episodes {
			fmt.Fprintln(cmd.OutOrStdout(), formatEpisode(e))
		}
	},
}

var episodeWatchedCmd = &cobra.Command{
	Use:   "watched <number>",
	Short: "mark an episode as watched",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		number, err := parseEpisodeNumber(args[0])
		if err != nil {
			log.Fatalw("invalid episode number", zap.String("number", args[0]), zap.Error(err))
		}

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		if err := m.MarkWatched(ctx, number); err != nil {
			log.Fatalw("failed to mark episode watched", zap.Int32("episode", number), zap.Error(err))
		}
	},
}

var episodeImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "add or update episodes from a yaml catalog",
	Long: `Add or update episodes from a yaml catalog.

Example:
  episodes:
    - number: 1
      title: Binary Literals
      remoteVideoUrl: https://example.com/001.mp4`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalw("failed to open episode file", zap.Error(err))
		}
		defer f.Close()

		requests, err := manager.ParseEpisodeFile(f)
		if err != nil {
			log.Fatalw("failed to parse episode file", zap.Error(err))
		}

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		n, err := m.ImportEpisodes(ctx, requests)
		if err != nil {
			log.Fatalw("failed to import episodes", zap.Error(err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d episodes\n", n)
	},
}

func parseEpisodeNumber(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func formatEpisode(e manager.Episode) string {
	mark := " "
	if e.Watched {
		mark = "x"
	}

	video := ""
	if e.HasVideo {
		video = " (downloaded)"
	}

	return fmt.Sprintf("[%s] %03d %s%s", mark, e.Number, e.Title, video)
}

func init() {
	episodeListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include watched episodes")

	episodeCmd.AddCommand(episodeListCmd)
	episodeCmd.AddCommand(episodeWatchedCmd)
	episodeCmd.AddCommand(episodeImportCmd)
	rootCmd.AddCommand(episodeCmd)
}
