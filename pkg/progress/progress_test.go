package progress

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "episode.trace")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEstimator_CurrentFraction(t *testing.T) {
	ctx := context.Background()
	e := NewEstimator(&mio.MediaFileSystem{})

	tests := []struct {
		name      string
		content   string
		wantKnown bool
		want      string
	}{
		{
			name:      "header without data is zero",
			content:   "0000: content-length: 512\r\n",
			wantKnown: true,
			want:      "0",
		},
		{
			name:      "three chunks of one hundred",
			content:   "0000: content-length: 100\r\n<= Recv data (10 bytes)\r\n<= Recv data (20 bytes)\r\n<= Recv data (30 bytes)\r\n",
			wantKnown: true,
			want:      "0.6",
		},
		{
			name:      "unknown total",
			content:   "<= Recv data (5 bytes)\r\n",
			wantKnown: false,
			want:      Unknown,
		},
		{
			name:      "zero header then real header",
			content:   "0000: content-length: 0\r\n0000: content-length: 200\r\n<= Recv data, 100 bytes (0x64)\r\n",
			wantKnown: true,
			want:      "0.5",
		},
		{
			name:      "empty trace",
			content:   "",
			wantKnown: false,
			want:      Unknown,
		},
		{
			name:      "clamped to one",
			content:   "0000: content-length: 10\n<= Recv data (25 bytes)\n",
			wantKnown: true,
			want:      "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTrace(t, tt.content)

			got, err := e.CurrentFraction(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKnown, got.Known())
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, path, got.TraceFile)
		})
	}
}

func TestEstimator_Idempotent(t *testing.T) {
	ctx := context.Background()
	e := NewEstimator(&mio.MediaFileSystem{})
	path := writeTrace(t, "0000: content-length: 300\n<= Recv data (100 bytes)\n")

	first, err := e.CurrentFraction(ctx, path)
	require.NoError(t, err)
	second, err := e.CurrentFraction(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEstimator_Appended(t *testing.T) {
	ctx := context.Background()
	e := NewEstimator(&mio.MediaFileSystem{})
	path := writeTrace(t, "")

	got, err := e.CurrentFraction(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, Unknown, got.String())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("0000: content-length: 200\r\n<= Recv data (50 bytes)\r\n<= Recv data (50 bytes)\r\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err = e.CurrentFraction(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "0.5", got.String())
	assert.Equal(t, trace.StateTransferring, got.State)
	assert.False(t, got.Finished())
}

func TestEstimator_NotFound(t *testing.T) {
	e := NewEstimator(&mio.MediaFileSystem{})

	_, err := e.CurrentFraction(context.Background(), filepath.Join(t.TempDir(), "missing.trace"))
	assert.ErrorIs(t, err, ErrTraceNotFound)
}

func TestSnapshot_JSON(t *testing.T) {
	t.Run("unknown fraction is null", func(t *testing.T) {
		b, err := json.Marshal(NewSnapshot("a.trace", trace.Counts{Received: 5, State: trace.StateTransferring}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"traceFile":"a.trace","totalBytes":0,"receivedBytes":5,"fraction":null,"state":"transferring"}`, string(b))
	})

	t.Run("known fraction", func(t *testing.T) {
		b, err := json.Marshal(NewSnapshot("a.trace", trace.Counts{Total: 4, Received: 1, State: trace.StateFailed, Reason: "exit status 7"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"traceFile":"a.trace","totalBytes":4,"receivedBytes":1,"fraction":0.25,"state":"failed","reason":"exit status 7"}`, string(b))
	})
}
