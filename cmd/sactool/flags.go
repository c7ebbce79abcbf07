package main

import (
	"flag"
	"fmt"
	"os"
)

func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config

	fs.IntVar(
		&cfg.Read.MaxSamples,
		"read.max-samples",
		1<<20,
		"maximum samples loaded per file; longer files are clamped",
	)

	fs.StringVar(
		&cfg.IO.ByteOrder,
		"io.byte-order",
		"native",
		"byte order for writing and preferred on read: native, little or big",
	)

	fs.BoolVar(
		&cfg.IO.DetectByteOrder,
		"io.detect-byte-order",
		true,
		"read files written with the opposite byte order",
	)

	fs.IntVar(
		&cfg.IO.BytesPerSec,
		"io.bytes-per-sec",
		0,
		"file i/o rate limit in bytes per second (0 = unlimited)",
	)

	fs.IntVar(
		&cfg.IO.Burst,
		"io.burst",
		0,
		"burst size in bytes for the i/o rate limiter",
	)

	fs.IntVar(
		&cfg.IO.ChunkSamples,
		"io.chunk-samples",
		4096,
		"samples converted per read or write call",
	)

	fs.StringVar(
		&cfg.Log.Level,
		"log.level",
		"info",
		"debug, info, warn or error",
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() > 0 {
		cfg.Command = fs.Arg(0)
		cfg.Args = fs.Args()[1:]
	}

	return cfg, nil
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: sactool [flags] info <file>")
	fmt.Fprintln(out, "       sactool [flags] copy <in> <out>")
	fmt.Fprintln(out, "Flags:")
	fs.PrintDefaults()
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("sactool", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(fs) }
	return fs
}
