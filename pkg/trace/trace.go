// Package trace reads the verbose ascii trace written by the transfer tool
// and extracts the byte counts needed to estimate download progress.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// State describes whether the process writing a trace is still running.
type State string

const (
	StateTransferring State = "transferring"
	StateComplete     State = "complete"
	StateFailed       State = "failed"
)

const (
	headerPrefix   = "0000: "
	dataPrefix     = "<= Recv data"
	completeMarker = "== Transfer complete"
	failedMarker   = "== Transfer failed"

	maxLineSize = 1024 * 1024
)

var (
	contentLengthRE = regexp.MustCompile(`(?i)^0000: content-length:\s*(\d+)`)
	statusLineRE    = regexp.MustCompile(`^0000: HTTP/[\d.]+ (\d{3})`)
	digitsRE        = regexp.MustCompile(`\d+`)
)

// Counts is the result of a single pass over a trace.
type Counts struct {
	Total    int64
	Received int64
	State    State
	Reason   string
}

// TotalKnown reports whether a non-zero content-length header has been seen.
func (c Counts) TotalKnown() bool {
	return c.Total > 0
}

// Parse scans r from the start. The first non-zero content-length header sets
// Total and later ones are ignored. Every data line adds its chunk size to
// Received. Headers and data of redirect (3xx) responses are skipped.
func Parse(r io.Reader) (Counts, error) {
	counts := Counts{State: StateTransferring}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	redirect := false
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, headerPrefix):
			if status := statusLineRE.FindStringSubmatch(line); status != nil {
				redirect = status[1][0] == '3'
				continue
			}

			if redirect || counts.TotalKnown() {
				continue
			}

			match := contentLengthRE.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			total, err := strconv.ParseInt(match[1], 10, 64)
			if err != nil {
				return counts, fmt.Errorf("invalid content-length %q: %w", match[1], err)
			}
			counts.Total = total
		case strings.HasPrefix(line, dataPrefix):
			if redirect {
				continue
			}

			chunk := digitsRE.FindString(line[len(dataPrefix):])
			if chunk == "" {
				continue
			}

			size, err := strconv.ParseInt(chunk, 10, 64)
			if err != nil {
				return counts, fmt.Errorf("invalid chunk size %q: %w", chunk, err)
			}
			counts.Received += size
		case strings.HasPrefix(line, completeMarker):
			counts.State = StateComplete
		case strings.HasPrefix(line, failedMarker):
			counts.State = StateFailed
			counts.Reason = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, failedMarker), ":"))
		}
	}

	if err := scanner.Err(); err != nil {
		return counts, err
	}

	return counts, nil
}

// WriteComplete appends the marker recording a successful transfer.
func WriteComplete(w io.Writer) error {
	_, err := fmt.Fprintln(w, completeMarker)
	return err
}

// WriteFailed appends the marker recording a failed transfer.
func WriteFailed(w io.Writer, reason string) error {
	reason = strings.ReplaceAll(strings.TrimSpace(reason), "\n", " ")
	_, err := fmt.Fprintf(w, "%s: %s\n", failedMarker, reason)
	return err
}
