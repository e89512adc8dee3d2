package download

import (
	"context"
	"errors"
	"os/exec"

	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/trace"
	"go.uber.org/zap"
)

var _ Spawner = ProcessSpawner{}

// ProcessSpawner runs tasks as detached child processes. The process is never
// killed; when it exits a completion marker is appended to its trace file.
type ProcessSpawner struct {
	fs mio.FileIO
}

func NewProcessSpawner(fs mio.FileIO) ProcessSpawner {
	return ProcessSpawner{fs: fs}
}

func (p ProcessSpawner) Spawn(ctx context.Context, task Task) error {
	if task.Bin == "" {
		return errors.New("missing binary")
	}

	log := logger.FromCtx(ctx).With(zap.String("trace", task.TraceFile))

	// not bound to ctx, the transfer outlives the request that started it
	cmd := exec.Command(task.Bin, task.Args...)
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		waitErr := cmd.Wait()
		if err := p.mark(task.TraceFile, waitErr); err != nil {
			log.Warnw("failed to write completion marker", zap.Error(err))
			return
		}

		if waitErr != nil {
			log.Warnw("transfer failed", zap.Error(waitErr))
			return
		}
		log.Info("transfer complete")
	}()

	return nil
}

func (p ProcessSpawner) mark(traceFile string, waitErr error) error {
	w, err := p.fs.Append(traceFile)
	if err != nil {
		return err
	}
	defer w.Close()

	if waitErr != nil {
		return trace.WriteFailed(w, waitErr.Error())
	}

	return trace.WriteComplete(w)
}
