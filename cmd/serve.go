package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the media server",
	Long:  `start the media server and the download reconciler`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		cfg, m, err := newManager(ctx)
		if err != nil {
			log.Fatalw("failed to start", zap.Error(err))
		}

		srv := server.New(log, m, cfg.Server)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Serve(ctx, cfg.Server.Port)
		})
		g.Go(func() error {
			return m.RunReconciler(ctx, cfg.Manager.Jobs.DownloadReconcile)
		})

		if err := g.Wait(); err != nil {
			log.Errorw("server stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
