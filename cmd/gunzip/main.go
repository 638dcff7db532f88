package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"

	"github.com/chronos-tachyon/inflate"
)

const (
	exitOK    = 0
	exitError = 1
)

type config struct {
	help      bool
	copyright bool
	version   bool
	debug     bool
	trace     bool
	logStderr bool

	atomic       bool
	singleStream bool
	strictHCRC   bool
	format       FormatFlag
	mlevel       MemoryLevelFlag
	dict         string
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	cfg.format.Value = inflate.DefaultFormat
	cfg.mlevel.Value = inflate.DefaultMemory

	set := getopt.New()
	set.SetProgram("gunzip")
	set.SetParameters("<input> [<output>]")

	set.FlagLong(&cfg.help, "help", 'h', "print usage and exit")
	set.FlagLong(&cfg.copyright, "copyright", 'c', "print the license notice and exit")
	set.FlagLong(&cfg.version, "version", 'V', "print version and exit")

	set.FlagLong(&cfg.debug, "verbose", 'v', "enable debug logging")
	set.FlagLong(&cfg.trace, "debug", 'D', "enable debug and trace logging")
	set.FlagLong(&cfg.logStderr, "log-stderr", 'L', "log JSON to stderr")

	set.FlagLong(&cfg.atomic, "atomic", 'a', "write to a temporary file and rename it into place on success")
	set.FlagLong(&cfg.singleStream, "single-stream", 0, "stop after the first gzip member")
	set.FlagLong(&cfg.strictHCRC, "strict-header-crc", 0, "treat a gzip header CRC-16 mismatch as fatal")
	set.FlagLong(&cfg.format, "format", 'F', "file format; one of auto, gzip, zlib, or raw")
	set.FlagLong(&cfg.mlevel, "memory-level", 'M', "memory level; one of default, 1, 2, 3, 4, 5, 6, 7, 8, or 9")
	set.FlagLong(&cfg.dict, "dictionary", 0, "contents of pre-set dictionary, or @filename")

	// Windows-style switches are matched case-insensitively before getopt
	// sees them.
	filtered := make([]string, 0, len(args))
	for i, arg := range args {
		switch {
		case i == 0:
			filtered = append(filtered, arg)
		case strings.EqualFold(arg, "/help"):
			cfg.help = true
		case strings.EqualFold(arg, "/copyright"):
			cfg.copyright = true
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		filtered = append(filtered, "gunzip")
	}

	if err := set.Getopt(filtered, nil); err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr, set)
		return exitError
	}

	// A malformed command line prints usage even if --copyright is given.
	positional := set.Args()
	switch {
	case cfg.help || len(positional) > 2:
		printUsage(stderr, set)
		return exitError
	case cfg.copyright:
		fmt.Fprint(stdout, copyrightNotice)
		return exitError
	case cfg.version:
		fmt.Fprintln(stdout, strings.TrimSpace(version))
		return exitOK
	case len(positional) < 1:
		printUsage(stderr, set)
		return exitError
	}

	logger := newLogger(stderr, cfg)

	var dict []byte
	if cfg.dict != "" {
		if cfg.dict[0] == '@' {
			raw, err := os.ReadFile(cfg.dict[1:])
			if err != nil {
				logger.Error().
					Str("filename", cfg.dict[1:]).
					Err(err).
					Msg("failed to read dictionary")
				return exitError
			}
			dict = raw
		} else {
			dict = []byte(cfg.dict)
		}
	}

	var outputArg string
	if len(positional) == 2 {
		outputArg = positional[1]
	}

	inputPath, outputPath, err := resolvePaths(positional[0], outputArg)
	if err == nil {
		err = checkNotSameFile(inputPath, outputPath)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Msg("invalid arguments")
		return exitError
	}

	opts := []inflate.Option{
		inflate.WithFormat(cfg.format.Value),
		inflate.WithMemoryLevel(cfg.mlevel.Value),
		inflate.WithMultistream(!cfg.singleStream),
		inflate.WithStrictHeaderCRC(cfg.strictHCRC),
		inflate.WithLogger(logger),
		inflate.WithTracers(inflate.Log(logger)),
	}
	if dict != nil {
		opts = append(opts, inflate.WithDictionary(dict))
	}

	start := time.Now()
	nn, err := decodeFile(inputPath, outputPath, cfg.atomic, opts)
	if err != nil {
		logger.Error().
			Str("input", inputPath).
			Str("output", outputPath).
			Int64("nn", nn).
			Err(err).
			Msg("decompression failed")
		return exitError
	}

	logger.Debug().
		Str("input", inputPath).
		Str("output", outputPath).
		Int64("nn", nn).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	return exitOK
}

func printUsage(w io.Writer, set *getopt.Set) {
	fmt.Fprint(w, usageText)
	fmt.Fprintln(w)
	set.PrintOptions(w)
}

func newLogger(stderr io.Writer, cfg config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.logStderr {
		logger = zerolog.New(stderr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	}

	level := zerolog.InfoLevel
	if cfg.debug {
		level = zerolog.DebugLevel
	}
	if cfg.trace {
		level = zerolog.TraceLevel
	}
	return logger.Level(level)
}

// decodeFile decompresses inputPath into outputPath.  Bytes written before a
// failure stay in outputPath unless atomic is set, in which case the
// partial output is discarded.
func decodeFile(inputPath, outputPath string, atomic bool, opts []inflate.Option) (nn int64, err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			err = multierror.Append(err, closeErr)
		}
	}()

	var out *os.File
	if atomic {
		dir, base := filepath.Split(outputPath)
		if dir == "" {
			dir = "."
		}
		out, err = os.CreateTemp(dir, "."+base+".tmp-*")
	} else {
		out, err = os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	}
	if err != nil {
		return 0, err
	}

	closed := false
	defer func() {
		if !closed {
			if closeErr := out.Close(); closeErr != nil {
				err = multierror.Append(err, closeErr)
			}
		}
		if atomic && err != nil {
			_ = os.Remove(out.Name())
		}
	}()

	nn, err = inflate.Decode(out, in, opts...)
	if err != nil {
		return nn, err
	}

	if atomic {
		closed = true
		if err = out.Close(); err != nil {
			return nn, err
		}
		if err = os.Rename(out.Name(), outputPath); err != nil {
			return nn, err
		}
	}
	return nn, nil
}
