package sacfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

var (
	ErrFileNotFound     = errors.New("sac file not found")
	ErrPermissionDenied = errors.New("sac file permission denied")
	ErrIO               = errors.New("sac file i/o error")
	ErrTruncatedFile    = errors.New("truncated sac file")
	ErrPartialWrite     = errors.New("partial sac write")
	ErrNilHeader        = errors.New("sac header is nil")
	ErrInvalidHeader    = errors.New("invalid sac header")
	ErrInvalidMax       = errors.New("max samples must be >= 0")
	ErrShortBuffer      = errors.New("sample buffer too small")
)

// Op names the direction a file was opened for.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// OpenError reports a file that could not be opened. It matches one of
// ErrFileNotFound, ErrPermissionDenied or ErrIO, and the underlying OS error.
type OpenError struct {
	Op   Op
	Path string
	Err  error
}

func newOpenError(op Op, path string, err error) *OpenError {
	return &OpenError{Op: op, Path: path, Err: err}
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: cannot open %s for %s: %v", e.Kind(), e.Path, e.Op, e.Err)
}

// Kind classifies the failure.
func (e *OpenError) Kind() error {
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		return ErrFileNotFound
	case errors.Is(e.Err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return ErrIO
	}
}

func (e *OpenError) Unwrap() []error {
	return []error{e.Kind(), e.Err}
}

// Section is the part of a file a truncation was detected in.
type Section string

const (
	SectionHeader  Section = "header"
	SectionSamples Section = "samples"
)

// TruncatedFileError reports a file shorter than its header promises.
// Expected and Actual count bytes for the header and samples for the samples.
type TruncatedFileError struct {
	Path     string
	Section  Section
	Expected int
	Actual   int
}

func (e *TruncatedFileError) Error() string {
	unit := "samples"
	if e.Section == SectionHeader {
		unit = "bytes"
	}
	path := e.Path
	if path == "" {
		path = "stream"
	}
	return fmt.Sprintf("truncated sac file %s: %s has %d of %d %s",
		path, e.Section, e.Actual, e.Expected, unit)
}

func (e *TruncatedFileError) Is(target error) bool {
	return target == ErrTruncatedFile
}

func (e *TruncatedFileError) Unwrap() error {
	return io.ErrUnexpectedEOF
}

// PartialWriteError reports that fewer samples than NPts reached the file.
// The file is still closed; callers decide whether to retry or discard it.
type PartialWriteError struct {
	Path     string
	Expected int
	Written  int
	Err      error
}

func (e *PartialWriteError) Error() string {
	path := e.Path
	if path == "" {
		path = "stream"
	}
	return fmt.Sprintf("partial sac write %s: wrote %d of %d samples: %v",
		path, e.Written, e.Expected, e.Err)
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
