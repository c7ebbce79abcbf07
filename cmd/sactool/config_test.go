package main

import (
	"flag"
	"io"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func parse(args ...string) (Config, error) {
	fs := flag.NewFlagSet("sactool", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseConfig(fs, args)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	Convey("Config", t, func() {
		Convey("defaults", func() {
			cfg, err := parse("info", "a.sac")
			So(err, ShouldBeNil)
			So(cfg.Command, ShouldEqual, cmdInfo)
			So(cfg.Args, ShouldResemble, []string{"a.sac"})
			So(cfg.Read.MaxSamples, ShouldEqual, 1<<20)
			So(cfg.IO.ByteOrder, ShouldEqual, "native")
			So(cfg.IO.DetectByteOrder, ShouldBeTrue)
			So(cfg.Validate(), ShouldBeNil)

			level, err := cfg.LogLevel()
			So(err, ShouldBeNil)
			So(level, ShouldEqual, slog.LevelInfo)

			opts, err := cfg.CodecOptions()
			So(err, ShouldBeNil)
			So(opts, ShouldHaveLength, 3)
		})

		Convey("flags", func() {
			cfg, err := parse(
				"-read.max-samples=10",
				"-io.byte-order=big",
				"-io.bytes-per-sec=4096",
				"-io.burst=512",
				"-log.level=debug",
				"copy", "in.sac", "out.sac",
			)
			So(err, ShouldBeNil)
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.Command, ShouldEqual, cmdCopy)
			So(cfg.Args, ShouldResemble, []string{"in.sac", "out.sac"})
			So(cfg.Read.MaxSamples, ShouldEqual, 10)

			opts, err := cfg.CodecOptions()
			So(err, ShouldBeNil)
			So(opts, ShouldHaveLength, 4)

			_, err = createCodecFrom(cfg, nil)
			So(err, ShouldBeNil)
		})

		Convey("invalid", func() {
			cases := map[string][]string{
				"command is required":                     {},
				`unknown command: "dump"`:                 {"dump", "a.sac"},
				"info takes exactly one file":             {"info"},
				"copy takes an input and an output file":  {"copy", "a.sac"},
				"copy input and output must differ":       {"copy", "a.sac", "a.sac"},
				"read.max-samples must be > 0":            {"-read.max-samples=0", "info", "a.sac"},
				"io.bytes-per-sec must be >= 0":           {"-io.bytes-per-sec=-1", "info", "a.sac"},
				"io.burst must be >= 0":                   {"-io.burst=-1", "info", "a.sac"},
				"io.burst requires io.bytes-per-sec > 0":  {"-io.burst=10", "info", "a.sac"},
				"io.chunk-samples must be > 0":            {"-io.chunk-samples=0", "info", "a.sac"},
				`io.byte-order: unknown byte order "pdp"`: {"-io.byte-order=pdp", "info", "a.sac"},
			}

			for want, args := range cases {
				cfg, err := parse(args...)
				So(err, ShouldBeNil)
				So(cfg.Validate(), ShouldBeError, want)
			}

			cfg, err := parse("-log.level=loud", "info", "a.sac")
			So(err, ShouldBeNil)
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("unknown flag", func() {
			_, err := parse("-nope", "info", "a.sac")
			So(err, ShouldNotBeNil)
		})
	})
}
