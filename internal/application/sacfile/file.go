package sacfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kvoloboi/sacio/internal/domain"
	"github.com/kvoloboi/sacio/internal/infrastructure/throttle"
)

var defaultCodec, _ = New(nil)

// ReadFile reads path with the default codec. See Codec.ReadFile.
func ReadFile(path string, dst []float32, hdr *domain.Header, maxSamples int) (int, error) {
	return defaultCodec.ReadFile(context.Background(), path, dst, hdr, maxSamples)
}

// WriteFile writes path with the default codec. See Codec.WriteFile.
func WriteFile(path string, samples []float32, hdr *domain.Header) error {
	return defaultCodec.WriteFile(context.Background(), path, samples, hdr)
}

// ReadFile loads the header of path into hdr and up to maxSamples samples
// into dst. The file itself is never modified, even when hdr.NPts is clamped.
func (c *Codec) ReadFile(
	ctx context.Context,
	path string,
	dst []float32,
	hdr *domain.Header,
	maxSamples int,
) (int, error) {
	if err := checkRead(hdr, maxSamples); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, newOpenError(OpRead, path, err)
	}
	defer f.Close()

	n, err := c.Decode(c.reader(ctx, f), dst, hdr, maxSamples)
	if err != nil {
		var te *TruncatedFileError
		if errors.As(err, &te) {
			te.Path = path
		}
		return n, err
	}

	c.logger.Debug("read sac file", "path", path, "npts", hdr.NPts)
	return n, nil
}

// ReadHeader loads only the header of path.
func (c *Codec) ReadHeader(ctx context.Context, path string, hdr *domain.Header) error {
	if hdr == nil {
		return ErrNilHeader
	}

	f, err := os.Open(path)
	if err != nil {
		return newOpenError(OpRead, path, err)
	}
	defer f.Close()

	if _, err := c.decodeHeader(c.reader(ctx, f), hdr); err != nil {
		var te *TruncatedFileError
		if errors.As(err, &te) {
			te.Path = path
		}
		return err
	}

	return nil
}

// WriteFile creates or truncates path and encodes hdr and samples into it.
// A *PartialWriteError is returned, not fatal: the file is still closed.
func (c *Codec) WriteFile(ctx context.Context, path string, samples []float32, hdr *domain.Header) (err error) {
	if err := checkWrite(samples, hdr); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return newOpenError(OpWrite, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrIO, path, cerr)
		}
	}()

	if err := c.Encode(c.writer(ctx, f), samples, hdr); err != nil {
		var pwe *PartialWriteError
		if errors.As(err, &pwe) {
			pwe.Path = path
			c.logger.Warn("sac samples not fully written",
				"path", path,
				"written", pwe.Written,
				"npts", pwe.Expected,
				"err", pwe.Err,
			)
		}
		return err
	}

	c.logger.Debug("wrote sac file",
		"path", path,
		"npts", hdr.NPts,
		"depmin", hdr.DepMin,
		"depmax", hdr.DepMax,
	)
	return nil
}

func (c *Codec) reader(ctx context.Context, r io.Reader) io.Reader {
	if c.limiter == nil {
		return r
	}
	return throttle.NewReader(ctx, r, c.limiter)
}

func (c *Codec) writer(ctx context.Context, w io.Writer) io.Writer {
	if c.limiter == nil {
		return w
	}
	return throttle.NewWriter(ctx, w, c.limiter)
}
