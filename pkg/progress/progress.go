package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/trace"
	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"
)

// Unknown is the textual fraction reported before the total size is known.
const Unknown = "unknown"

var ErrTraceNotFound = errors.New("trace file not found")

// Snapshot is the progress of one download at the time it was read.
// Fraction is null until the trace has announced a content length.
type Snapshot struct {
	TraceFile string                     `json:"traceFile"`
	Total     int64                      `json:"totalBytes"`
	Received  int64                      `json:"receivedBytes"`
	Fraction  nullable.Nullable[float64] `json:"fraction"`
	State     trace.State                `json:"state"`
	Reason    string                     `json:"reason,omitempty"`
}

// Known reports whether a fraction could be computed.
func (s Snapshot) Known() bool {
	return s.Fraction.IsSpecified() && !s.Fraction.IsNull()
}

// String renders the fraction the way the progress endpoint returns it.
func (s Snapshot) String() string {
	f, err := s.Fraction.Get()
	if err != nil {
		return Unknown
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Finished reports whether the transfer process has exited.
func (s Snapshot) Finished() bool {
	return s.State == trace.StateComplete || s.State == trace.StateFailed
}

// Estimator computes progress by rereading a trace file on every call.
type Estimator struct {
	fs mio.FileIO
}

func NewEstimator(fs mio.FileIO) Estimator {
	return Estimator{fs: fs}
}

// CurrentFraction parses the trace at path from the beginning.
func (e Estimator) CurrentFraction(ctx context.Context, path string) (Snapshot, error) {
	log := logger.FromCtx(ctx)

	f, err := e.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrTraceNotFound, path)
		}
		return Snapshot{}, err
	}
	defer f.Close()

	counts, err := trace.Parse(f)
	if err != nil {
		log.Debugw("failed to parse trace", zap.String("trace", path), zap.Error(err))
		return Snapshot{}, fmt.Errorf("failed to parse trace %s: %w", path, err)
	}

	return NewSnapshot(path, counts), nil
}

// NewSnapshot derives a snapshot from parsed counts.
func NewSnapshot(path string, counts trace.Counts) Snapshot {
	snapshot := Snapshot{
		TraceFile: path,
		Total:     counts.Total,
		Received:  counts.Received,
		State:     counts.State,
		Reason:    counts.Reason,
		Fraction:  nullable.NewNullNullable[float64](),
	}

	if !counts.TotalKnown() {
		return snapshot
	}

	fraction := float64(counts.Received) / float64(counts.Total)
	fraction = min(max(fraction, 0), 1)
	snapshot.Fraction = nullable.NewNullableWithValue(fraction)

	return snapshot
}
