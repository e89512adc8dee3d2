package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	pollInterval time.Duration
	listActive   bool
)

// downloadCmd groups the download commands
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download episodes and follow their progress",
}

var downloadStartCmd = &cobra.Command{
	Use:   "start <number>",
	Short: "download an episode and follow it until it finishes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		number, err := parseEpisodeNumber(args[0])
		if err != nil {
			log.Fatalw("invalid episode number", zap.String("number", args[0]), zap.Error(err))
		}

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		resp, err := m.DownloadEpisode(ctx, number)
		if err != nil {
			log.Fatalw("failed to start download", zap.Int32("episode", number), zap.Error(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.TraceFile)

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Infow("stopped following download, the transfer keeps running", zap.String("trace", resp.TraceFile))
				return
			case <-ticker.C:
			}

			snapshot, err := m.Progress(ctx, resp.TraceFile)
			if err != nil {
				log.Fatalw("failed to read progress", zap.Error(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatSnapshot(snapshot))
			if snapshot.Finished() {
				return
			}
		}
	},
}

var downloadProgressCmd = &cobra.Command{
	Use:   "progress <tracefile>",
	Short: "print the progress of a download",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		snapshot, err := m.Progress(ctx, args[0])
		if err != nil {
			log.Fatalw("failed to read progress", zap.String("trace", args[0]), zap.Error(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatSnapshot(snapshot))
	},
}

var downloadListCmd = &cobra.Command{
	Use:   "list",
	Short: "list recorded downloads",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		_, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		downloads, err := m.ListDownloads(ctx, listActive)
		if err != nil {
			log.Fatalw("failed to list downloads", zap.Error(err))
		}

		for _, d := range downloads {
			fmt.Fprintln(cmd.OutOrStdout(), formatDownload(d))
		}
	},
}

func formatSnapshot(s progress.Snapshot) string {
	line := fmt.Sprintf("%s %s", s.State, s.String())
	if s.Known() {
		line += fmt.Sprintf(" (%s of %s)", humanize.IBytes(uint64(s.Received)), humanize.IBytes(uint64(s.Total)))
	} else {
		line += fmt.Sprintf(" (%s received)", humanize.IBytes(uint64(s.Received)))
	}

	if s.Reason != "" {
		line += ": " + s.Reason
	}

	return line
}

func formatDownload(d *storage.Download) string {
	started := ""
	if d.CreatedAt != nil {
		started = humanize.Time(*d.CreatedAt)
	}

	return fmt.Sprintf("%d\t%03d\t%s\t%s\t%s", d.ID, d.EpisodeNumber, d.State, started, d.TraceFile)
}

func init() {
	downloadStartCmd.Flags().DurationVar(&pollInterval, "poll", time.Second, "how often to print progress")
	downloadListCmd.Flags().BoolVar(&listActive, "active", false, "only list unfinished downloads")

	downloadCmd.AddCommand(downloadStartCmd)
	downloadCmd.AddCommand(downloadProgressCmd)
	downloadCmd.AddCommand(downloadListCmd)
	rootCmd.AddCommand(downloadCmd)
}
