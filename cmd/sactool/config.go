package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kvoloboi/sacio/internal/application/sacfile"
)

const (
	cmdInfo = "info"
	cmdCopy = "copy"
)

type Config struct {
	Command string
	Args    []string

	Read struct {
		MaxSamples int
	}
	IO struct {
		ByteOrder       string
		DetectByteOrder bool
		BytesPerSec     int
		Burst           int
		ChunkSamples    int
	}
	Log struct {
		Level string
	}
}

func (c Config) Validate() error {
	switch c.Command {
	case cmdInfo:
		if len(c.Args) != 1 {
			return errors.New("info takes exactly one file")
		}
	case cmdCopy:
		if len(c.Args) != 2 {
			return errors.New("copy takes an input and an output file")
		}
		if c.Args[0] == c.Args[1] {
			return errors.New("copy input and output must differ")
		}
	case "":
		return errors.New("command is required")
	default:
		return fmt.Errorf("unknown command: %q", c.Command)
	}

	if c.Read.MaxSamples <= 0 {
		return errors.New("read.max-samples must be > 0")
	}

	if _, err := sacfile.ParseByteOrder(c.IO.ByteOrder); err != nil {
		return fmt.Errorf("io.byte-order: %w", err)
	}

	if c.IO.BytesPerSec < 0 {
		return errors.New("io.bytes-per-sec must be >= 0")
	}
	if c.IO.Burst < 0 {
		return errors.New("io.burst must be >= 0")
	}
	if c.IO.BytesPerSec == 0 && c.IO.Burst > 0 {
		return errors.New("io.burst requires io.bytes-per-sec > 0")
	}

	if c.IO.ChunkSamples <= 0 {
		return errors.New("io.chunk-samples must be > 0")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func (c Config) CodecOptions() ([]sacfile.Option, error) {
	order, err := sacfile.ParseByteOrder(c.IO.ByteOrder)
	if err != nil {
		return nil, err
	}

	opts := []sacfile.Option{
		sacfile.WithByteOrder(order),
		sacfile.WithByteOrderDetection(c.IO.DetectByteOrder),
		sacfile.WithChunkSamples(c.IO.ChunkSamples),
	}
	if c.IO.BytesPerSec > 0 {
		opts = append(opts, sacfile.WithRateLimit(c.IO.BytesPerSec, c.IO.Burst))
	}

	return opts, nil
}
