package detstream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// maxLineBytes bounds a single query line.
const maxLineBytes = 16 * 1024 * 1024

// Run drives the streaming loop: read one query line, decode it to a
// vector of the registry's dimension, evaluate it, write one estimate
// line. Output line i always corresponds to input line i.
//
// The loop is strictly sequential across lines; parallelism exists only
// inside Evaluate, across models. It terminates on the first
// zero-length line even if more input follows, or when in is exhausted.
//
// A line with a malformed token is evaluated with the tokens that did
// parse and counted in Stats.MalformedLines. A line for which the whole
// ensemble reports zero support produces the explicit marker "NaN" and
// is counted in Stats.DegenerateLines; neither condition stops the run.
func (e *Evaluator) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	bw := bufio.NewWriter(out)
	dim := e.registry.QueryDimension()
	logger := e.registry.logger

	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 {
			break
		}
		stats.LinesRead++

		vec, err := DecodeVector(line, dim)
		if err != nil {
			stats.MalformedLines++
			if logger != nil {
				logger.Warn("malformed query line", "line", stats.LinesRead, "error", err)
			}
		}

		density, err := e.Evaluate(ctx, vec)
		switch {
		case err == nil:
			if _, werr := bw.WriteString(strconv.FormatFloat(density, 'g', -1, 64) + "\n"); werr != nil {
				return stats, fmt.Errorf("writing estimate: %w", werr)
			}
		case errors.Is(err, ErrZeroWeight):
			stats.DegenerateLines++
			if logger != nil {
				logger.Warn("zero ensemble support", "line", stats.LinesRead)
			}
			if _, werr := bw.WriteString("NaN\n"); werr != nil {
				return stats, fmt.Errorf("writing estimate: %w", werr)
			}
		default:
			return stats, err
		}
		stats.EstimatesWritten++
	}

	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("reading queries: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flushing estimates: %w", err)
	}

	return stats, nil
}
