package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kasuboski/tapas/config"
	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrLaunchFailed   = errors.New("failed to launch transfer")
	ErrInvalidRequest = errors.New("invalid download request")
)

// Handle locates the trace file of a started download. It is not tied to the
// process that writes it and stays valid after the process exits.
type Handle string

func (h Handle) String() string {
	return string(h)
}

// Task is a transfer handed off to the operating system
type Task struct {
	Bin       string
	Args      []string
	TraceFile string
}

// Spawner starts a task without waiting for it to finish
type Spawner interface {
	Spawn(ctx context.Context, task Task) error
}

// Launcher starts downloads of remote files through the configured transfer tool
type Launcher struct {
	config  config.Download
	spawner Spawner
	fs      mio.FileIO
}

func NewLauncher(cfg config.Download, spawner Spawner, fs mio.FileIO) Launcher {
	return Launcher{
		config:  cfg,
		spawner: spawner,
		fs:      fs,
	}
}

// StartDownload allocates an empty trace file under the absolute trace directory, spawns the transfer tool and returns the trace handle
// without waiting for the transfer.
func (l Launcher) StartDownload(ctx context.Context, remoteURL, destination string) (Handle, error) {
	log := logger.FromCtx(ctx)

	if remoteURL == "" {
		return "", fmt.Errorf("%w: remote url is empty", ErrInvalidRequest)
	}
	if destination == "" {
		return "", fmt.Errorf("%w: destination is empty", ErrInvalidRequest)
	}

	traceDir, err := filepath.Abs(l.config.TraceDir)
	if err != nil {
		return "", err
	}

	if err := l.fs.MkdirAll(traceDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create trace directory: %w", err)
	}
	if err := l.fs.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	traceFile := filepath.Join(traceDir, uuid.NewString()+".trace")
	if err := l.fs.CreateEmpty(traceFile); err != nil {
		return "", fmt.Errorf("failed to create trace file: %w", err)
	}

	task := Task{
		Bin:       l.config.Binary,
		Args:      ExpandArgs(l.config.Args, remoteURL, destination, traceFile),
		TraceFile: traceFile,
	}

	err = l.spawner.Spawn(ctx, task)
	if err != nil {
		log.Errorw("failed to spawn transfer", zap.String("bin", task.Bin), zap.String("trace", traceFile), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	log.Infow("download started", zap.String("url", remoteURL), zap.String("destination", destination), zap.String("trace", traceFile))
	return Handle(traceFile), nil
}

// ExpandArgs substitutes the per download placeholders in args
func ExpandArgs(args []string, remoteURL, destination, traceFile string) []string {
	replacer := strings.NewReplacer(
		"{url}", remoteURL,
		"{dest}", destination,
		"{trace}", traceFile,
	)

	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = replacer.Replace(a)
	}

	return expanded
}
