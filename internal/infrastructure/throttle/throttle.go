package throttle

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// NewLimiter returns a byte rate limiter. A burst of 0 allows bytesPerSec
// bytes at once.
func NewLimiter(bytesPerSec, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = bytesPerSec
	}

	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// Reader waits on a shared limiter before each read. Reads are capped at the
// limiter burst.
type Reader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func NewReader(ctx context.Context, r io.Reader, limiter *rate.Limiter) *Reader {
	return &Reader{
		ctx:     ctx,
		r:       r,
		limiter: limiter,
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := chunkSize(r.limiter, len(p))
	if err := r.limiter.WaitN(r.ctx, n); err != nil {
		return 0, err
	}

	return r.r.Read(p[:n])
}

// Writer splits writes into burst sized chunks and waits on the limiter
// before each one.
type Writer struct {
	ctx     context.Context
	w       io.Writer
	limiter *rate.Limiter
}

func NewWriter(ctx context.Context, w io.Writer, limiter *rate.Limiter) *Writer {
	return &Writer{
		ctx:     ctx,
		w:       w,
		limiter: limiter,
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	written := 0

	for written < len(p) {
		n := chunkSize(w.limiter, len(p)-written)
		if err := w.limiter.WaitN(w.ctx, n); err != nil {
			return written, err
		}

		m, err := w.w.Write(p[written : written+n])
		written += m
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func chunkSize(limiter *rate.Limiter, want int) int {
	burst := limiter.Burst()
	if burst <= 0 || limiter.Limit() == rate.Inf {
		return want
	}
	return min(want, burst)
}
