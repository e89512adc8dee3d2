package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/tapas/pkg/storage"
	"github.com/kasuboski/tapas/pkg/storage/sqlite/schema/gen/table"
)

// CreateDownload records a started download
func (s *SQLite) CreateDownload(ctx context.Context, download storage.Download) (int64, error) {
	if download.State == "" {
		download.State = string(storage.DownloadStateStarted)
	}

	stmt := table.Download.
		INSERT(table.Download.EpisodeNumber, table.Download.TraceFile, table.Download.Destination, table.Download.State).
		MODEL(download)

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// GetDownloadByTraceFile looks up the download that writes the given trace file
func (s *SQLite) GetDownloadByTraceFile(ctx context.Context, traceFile string) (*storage.Download, error) {
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download).
		WHERE(table.Download.TraceFile.EQ(sqlite.String(traceFile)))

	download := new(storage.Download)
	err := stmt.QueryContext(ctx, s.db, download)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get download: %w", err)
	}

	return download, nil
}

// ListDownloads lists downloads, most recent first
func (s *SQLite) ListDownloads(ctx context.Context, where ...sqlite.BoolExpression) ([]*storage.Download, error) {
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download)

	if len(where) > 0 {
		stmt = stmt.WHERE(sqlite.AND(where...))
	}

	downloads := make([]*storage.Download, 0)
	err := stmt.ORDER_BY(table.Download.ID.DESC()).QueryContext(ctx, s.db, &downloads)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}

	return downloads, nil
}

// UpdateDownloadState moves a download to a new state if the transition is allowed
func (s *SQLite) UpdateDownloadState(ctx context.Context, id int64, state storage.DownloadState) error {
	current, err := s.getDownload(ctx, id)
	if err != nil {
		return err
	}

	if err := current.Machine().ToState(state); err != nil {
		return err
	}

	now := time.Now().UTC()
	stmt := table.Download.
		UPDATE(table.Download.State, table.Download.UpdatedAt).
		MODEL(storage.Download{State: string(state), UpdatedAt: &now}).
		WHERE(table.Download.ID.EQ(sqlite.Int64(id)))

	return s.handleUpdate(ctx, stmt)
}

func (s *SQLite) getDownload(ctx context.Context, id int64) (*storage.Download, error) {
	stmt := table.Download.
		SELECT(table.Download.AllColumns).
		FROM(table.Download).
		WHERE(table.Download.ID.EQ(sqlite.Int64(id)))

	download := new(storage.Download)
	err := stmt.QueryContext(ctx, s.db, download)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get download: %w", err)
	}

	return download, nil
}
