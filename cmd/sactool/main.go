package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvoloboi/sacio/internal/application/sacfile"
	"github.com/kvoloboi/sacio/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet()
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid cli parameters", "error", err)
		printUsage(fs)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	codec, err := createCodecFrom(cfg, logger)
	if err != nil {
		logger.Error("failed to create codec", "error", err)
		return 1
	}

	switch cfg.Command {
	case cmdInfo:
		err = info(ctx, codec, cfg, logger)
	case cmdCopy:
		err = copyFile(ctx, codec, cfg, logger)
	default:
		err = fmt.Errorf("unknown command: %q", cfg.Command)
	}

	if err != nil {
		logger.Error("command failed", "command", cfg.Command, "error", err)
		return 1
	}
	return 0
}

func createCodecFrom(cfg Config, logger *slog.Logger) (*sacfile.Codec, error) {
	opts, err := cfg.CodecOptions()
	if err != nil {
		return nil, err
	}
	return sacfile.New(logger, opts...)
}

// load sizes the sample buffer from the stored npts, bounded by the
// configured maximum.
func load(
	ctx context.Context,
	codec *sacfile.Codec,
	path string,
	maxSamples int,
) (domain.Header, []float32, error) {
	hdr := domain.NewHeader()
	if err := codec.ReadHeader(ctx, path, &hdr); err != nil {
		return hdr, nil, err
	}

	samples := make([]float32, min(int(hdr.NPts), maxSamples))
	n, err := codec.ReadFile(ctx, path, samples, &hdr, maxSamples)
	if err != nil {
		return hdr, nil, err
	}

	return hdr, samples[:n], nil
}

func info(ctx context.Context, codec *sacfile.Codec, cfg Config, logger *slog.Logger) error {
	path := cfg.Args[0]

	hdr, samples, err := load(ctx, codec, path, cfg.Read.MaxSamples)
	if err != nil {
		return err
	}

	logger.Info("sac header",
		"path", path,
		"npts", hdr.NPts,
		"delta", hdr.Delta,
		"b", hdr.B,
		"e", hdr.E,
		"iftype", hdr.IFType,
		"leven", hdr.LEven.Bool(),
		"nvhdr", hdr.NVHdr,
		"station", hdr.Station(),
		"network", hdr.Network(),
		"component", hdr.Component(),
		"depmin", hdr.DepMin,
		"depmax", hdr.DepMax,
	)

	if len(samples) == 0 {
		return nil
	}

	lo, hi := domain.AmplitudeRange(samples)
	if lo != hdr.DepMin || hi != hdr.DepMax {
		logger.Warn("stored amplitude bounds differ from loaded samples",
			"path", path,
			"depmin", lo,
			"depmax", hi,
		)
	}

	return nil
}

func copyFile(ctx context.Context, codec *sacfile.Codec, cfg Config, logger *slog.Logger) error {
	in, out := cfg.Args[0], cfg.Args[1]

	hdr, samples, err := load(ctx, codec, in, cfg.Read.MaxSamples)
	if err != nil {
		return err
	}

	if err := codec.WriteFile(ctx, out, samples, &hdr); err != nil {
		return err
	}

	logger.Info("copied sac file",
		"from", in,
		"to", out,
		"npts", hdr.NPts,
		"depmin", hdr.DepMin,
		"depmax", hdr.DepMax,
	)
	return nil
}
