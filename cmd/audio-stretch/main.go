// Command audio-stretch changes the duration of a WAV file without changing
// its pitch.
//
// Usage:
//
//	audio-stretch -r 1.5 input.wav output.wav            # 50% longer
//	audio-stretch -r 0.8 -g 0.5 speech.wav faster.wav    # shorten, squeeze pauses harder
//	audio-stretch -c music.wav wobble.wav                # sweep the ratio continuously
//	audio-stretch -r 2 -s -rescale resample in.wav out.wav
//
// With -s the output sample rate is multiplied by the ratio, so the stretched
// audio plays back in the original duration at a shifted pitch. -rescale
// chooses whether that rate is only declared in the header, converted back
// to the input rate in process, or handed to an external command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	stretch "github.com/tphakala/go-audio-stretch"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Print(describe(err))
		}
		os.Exit(exitCode(err))
	}
}

// options is the parsed command line.
type options struct {
	cfg     stretch.Config
	input   string
	output  string
	verbose bool
	quiet   bool
}

// usageError marks errors caused by the command line itself.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func run(args []string, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New(stderr, "", 0)
	if !opts.quiet {
		for _, w := range opts.cfg.Warnings() {
			logger.Printf("warning: %s", w)
		}
	}

	stats, err := stretch.Run(opts.cfg, opts.input, opts.output)
	if err != nil {
		if opts.verbose && stats != nil {
			_ = stats.Report(stderr)
		}
		return err
	}

	if opts.verbose {
		if err := stats.Report(stderr); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("audio-stretch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := stretch.DefaultConfig()
	fs.Float64Var(&cfg.Ratio, "r", cfg.Ratio, "stretch ratio, 0.25 to 4.0 (above 1 lengthens)")
	fs.Float64Var(&cfg.GapRatio, "g", 0, "ratio for silent gaps, 0.25 to 4.0 (0 uses -r)")
	fs.IntVar(&cfg.UpperHz, "u", cfg.UpperHz, "upper pitch frequency in Hz")
	fs.IntVar(&cfg.LowerHz, "l", cfg.LowerHz, "lower pitch frequency in Hz")
	fs.IntVar(&cfg.WindowMs, "b", cfg.WindowMs, "audio window in ms, 1 to 100")
	fs.Float64Var(&cfg.ThresholdDB, "t", cfg.ThresholdDB, "silence threshold in dB, -70 to -10")
	cycleUp := fs.Bool("c", false, "cycle the ratio through the full range, starting higher")
	cycleDown := fs.Bool("C", false, "cycle the ratio through the full range, starting lower")
	fs.BoolVar(&cfg.ForceDual, "d", false, "force dual instance even for ratios in [0.5, 2]")
	fs.BoolVar(&cfg.ForceFast, "f", false, "fast pitch detection (default at 32 kHz and above)")
	fs.BoolVar(&cfg.ForceNormal, "n", false, "normal pitch detection (overrides -f)")
	fs.BoolVar(&cfg.ScaleRate, "s", false, "scale the output sample rate by the ratio")
	rescale := fs.String("rescale", stretch.RescaleHeader.String(), "how -s delivers the scaled rate: header, resample or exec")
	rescaleCmd := fs.String("rescale-cmd", defaultRescaleCommand, "command for -rescale exec; {rate} {outrate} {channels} {output} are substituted")
	quiet := fs.Bool("q", false, "quiet: no warnings")
	verbose := fs.Bool("v", false, "verbose: print the run report")
	fs.BoolVar(&cfg.Overwrite, "y", false, "overwrite an existing output file")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: audio-stretch [options] infile.wav outfile.wav\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &usageError{msg: err.Error()}
	}

	if fs.NArg() != requiredArgs {
		fs.Usage()
		return nil, &usageError{msg: fmt.Sprintf("expected %d file arguments, got %d", requiredArgs, fs.NArg())}
	}

	switch {
	case *cycleDown:
		cfg.Cycle = stretch.CycleDown
	case *cycleUp:
		cfg.Cycle = stretch.CycleUp
	}

	mode, err := stretch.ParseRescaleMode(*rescale)
	if err != nil {
		return nil, &usageError{msg: err.Error()}
	}
	cfg.Rescale = mode
	cfg.RescaleCommand = strings.Fields(*rescaleCmd)

	return &options{
		cfg:     cfg,
		input:   fs.Arg(0),
		output:  fs.Arg(1),
		verbose: *verbose,
		quiet:   *quiet,
	}, nil
}

func exitCode(err error) int {
	var usage *usageError
	var capacity *stretch.CapacityError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp), errors.As(err, &usage):
		return exitUsage
	case errors.As(err, &capacity):
		return exitInternal
	default:
		return exitFailure
	}
}

func describe(err error) string {
	var capacity *stretch.CapacityError
	if errors.As(err, &capacity) {
		return internalErrorPrefix + ": " + err.Error()
	}
	return err.Error()
}
