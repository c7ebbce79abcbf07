package sacfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/kvoloboi/sacio/internal/domain"
	"github.com/kvoloboi/sacio/internal/infrastructure/throttle"
	"golang.org/x/time/rate"
)

const (
	sampleLen = 4

	defaultChunkSamples = 4096
)

// Codec reads and writes SAC files. Its configuration is fixed at
// construction so a single Codec may be shared between goroutines; the
// headers and sample buffers passed to it may not.
type Codec struct {
	order   binary.ByteOrder
	detect  bool
	chunk   int
	limiter *rate.Limiter
	logger  *slog.Logger
}

type Option func(*Codec) error

// WithByteOrder sets the order samples and header words are written in, and
// the order tried first on read.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Codec) error {
		if order == nil {
			return errors.New("byte order is required")
		}
		c.order = order
		return nil
	}
}

// WithByteOrderDetection toggles reading files written on a host of the
// opposite endianness.
func WithByteOrderDetection(enabled bool) Option {
	return func(c *Codec) error {
		c.detect = enabled
		return nil
	}
}

// WithRateLimit caps file I/O at bytesPerSec. A burst of 0 allows one
// second worth of bytes at once.
func WithRateLimit(bytesPerSec, burst int) Option {
	return func(c *Codec) error {
		if bytesPerSec <= 0 {
			return fmt.Errorf("bytes per second must be > 0, got %d", bytesPerSec)
		}
		if burst < 0 {
			return fmt.Errorf("burst must be >= 0, got %d", burst)
		}
		c.limiter = throttle.NewLimiter(bytesPerSec, burst)
		return nil
	}
}

// WithChunkSamples sets how many samples are converted per read or write call.
func WithChunkSamples(n int) Option {
	return func(c *Codec) error {
		if n <= 0 {
			return fmt.Errorf("chunk samples must be > 0, got %d", n)
		}
		c.chunk = n
		return nil
	}
}

func New(logger *slog.Logger, opts ...Option) (*Codec, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Codec{
		order:  binary.NativeEndian,
		detect: true,
		chunk:  defaultChunkSamples,
		logger: logger,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ParseByteOrder maps "native", "little" or "big" to a byte order.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "native", "":
		return binary.NativeEndian, nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}

// Decode reads a header into hdr and at most maxSamples samples into dst.
// When the stored npts exceeds maxSamples only hdr.NPts is lowered; the
// remaining samples are left unread. It returns the number of samples stored
// in dst, which is less than hdr.NPts only together with a
// *TruncatedFileError.
func (c *Codec) Decode(r io.Reader, dst []float32, hdr *domain.Header, maxSamples int) (int, error) {
	if err := checkRead(hdr, maxSamples); err != nil {
		return 0, err
	}

	order, err := c.decodeHeader(r, hdr)
	if err != nil {
		return 0, err
	}

	if int64(hdr.NPts) > int64(maxSamples) {
		c.logger.Debug("clamping npts to buffer limit", "npts", hdr.NPts, "max", maxSamples)
		hdr.NPts = int32(maxSamples)
	}

	n := int(hdr.NPts)
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d samples, have room for %d", ErrShortBuffer, n, len(dst))
	}

	return c.readSamples(r, order, dst[:n])
}

// Encode forces the time-series flags and header version on hdr, recomputes
// its amplitude bounds and writes the header followed by hdr.NPts samples.
func (c *Codec) Encode(w io.Writer, samples []float32, hdr *domain.Header) error {
	if err := checkWrite(samples, hdr); err != nil {
		return err
	}

	hdr.PrepareForWrite(samples)

	var buf [domain.HeaderSize]byte
	if _, err := binary.Encode(buf[:], c.order, hdr); err != nil {
		return err
	}
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: write header: %w", ErrIO, err)
	}

	n := int(hdr.NPts)
	written, err := c.writeSamples(w, samples[:n])
	if err != nil {
		return &PartialWriteError{Expected: n, Written: written, Err: err}
	}

	return nil
}

func checkRead(hdr *domain.Header, maxSamples int) error {
	if hdr == nil {
		return ErrNilHeader
	}
	if maxSamples < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMax, maxSamples)
	}
	return nil
}

func checkWrite(samples []float32, hdr *domain.Header) error {
	if hdr == nil {
		return ErrNilHeader
	}
	if hdr.NPts < 0 {
		return fmt.Errorf("%w: npts %d", ErrInvalidHeader, hdr.NPts)
	}
	if len(samples) < int(hdr.NPts) {
		return fmt.Errorf("%w: npts %d, have %d samples", ErrShortBuffer, hdr.NPts, len(samples))
	}
	return nil
}

// decodeHeader leaves hdr untouched unless the whole record is valid.
func (c *Codec) decodeHeader(r io.Reader, hdr *domain.Header) (binary.ByteOrder, error) {
	var buf [domain.HeaderSize]byte

	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedFileError{
				Section:  SectionHeader,
				Expected: domain.HeaderSize,
				Actual:   n,
			}
		}
		return nil, fmt.Errorf("%w: read header: %w", ErrIO, err)
	}

	order := c.order
	if c.detect {
		order = detectByteOrder(buf[:], c.order)
		if order != c.order {
			c.logger.Debug("header is byte swapped", "version", int32(order.Uint32(buf[domain.VersionOffset:])))
		}
	}

	var h domain.Header
	if _, err := binary.Decode(buf[:], order, &h); err != nil {
		return nil, err
	}
	if h.NPts < 0 {
		return nil, fmt.Errorf("%w: npts %d", ErrInvalidHeader, h.NPts)
	}

	*hdr = h
	return order, nil
}

func (c *Codec) readSamples(r io.Reader, order binary.ByteOrder, dst []float32) (int, error) {
	buf := make([]byte, min(len(dst), c.chunk)*sampleLen)
	read := 0

	for read < len(dst) {
		want := min(len(dst)-read, c.chunk)

		n, err := io.ReadFull(r, buf[:want*sampleLen])
		got := n / sampleLen
		for i := range got {
			dst[read+i] = math.Float32frombits(order.Uint32(buf[i*sampleLen:]))
		}
		read += got

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return read, &TruncatedFileError{
					Section:  SectionSamples,
					Expected: len(dst),
					Actual:   read,
				}
			}
			return read, fmt.Errorf("%w: read samples: %w", ErrIO, err)
		}
	}

	return read, nil
}

func (c *Codec) writeSamples(w io.Writer, samples []float32) (int, error) {
	buf := make([]byte, min(len(samples), c.chunk)*sampleLen)
	written := 0

	for written < len(samples) {
		chunk := samples[written:min(written+c.chunk, len(samples))]
		out := buf[:len(chunk)*sampleLen]
		for i, v := range chunk {
			c.order.PutUint32(out[i*sampleLen:], math.Float32bits(v))
		}

		n, err := w.Write(out)
		written += n / sampleLen
		if err != nil {
			return written, err
		}
		if n < len(out) {
			return written, io.ErrShortWrite
		}
	}

	return written, nil
}
