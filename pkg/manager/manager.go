package manager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kasuboski/tapas/config"
	"github.com/kasuboski/tapas/pkg/download"
	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage"
)

var ErrTraceOutsideDir = errors.New("trace file is outside the trace directory")

// Launcher starts a transfer and returns the trace handle to poll
type Launcher interface {
	StartDownload(ctx context.Context, remoteURL, destination string) (download.Handle, error)
}

// Estimator reads the progress of a transfer from its trace
type Estimator interface {
	CurrentFraction(ctx context.Context, path string) (progress.Snapshot, error)
}

// MediaManager is shared by the http server and the cli
type MediaManager struct {
	storage   storage.Storage
	launcher  Launcher
	estimator Estimator
	fs        mio.FileIO
	library   config.Library
	traceDir  string
	// started downloads with a trace untouched for longer are failed by the reconciler
	staleAfter time.Duration
}

func New(store storage.Storage, launcher Launcher, estimator Estimator, fs mio.FileIO, library config.Library, download config.Download) MediaManager {
	return MediaManager{
		storage:    store,
		launcher:   launcher,
		estimator:  estimator,
		fs:         fs,
		library:    library,
		traceDir:   download.TraceDir,
		staleAfter: download.StaleAfter,
	}
}

// resolveTrace cleans a client supplied trace path and makes sure it points inside the trace directory
func (m MediaManager) resolveTrace(traceFile string) (string, error) {
	if traceFile == "" {
		return "", fmt.Errorf("%w: empty path", ErrTraceOutsideDir)
	}

	dir, err := filepath.Abs(m.traceDir)
	if err != nil {
		return "", err
	}

	path := traceFile
	if !filepath.IsAbs(path) && !strings.ContainsRune(path, filepath.Separator) {
		path = filepath.Join(m.traceDir, path)
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrTraceOutsideDir, traceFile)
	}

	return path, nil
}
