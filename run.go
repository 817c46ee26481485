package stretch

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tphakala/go-audio-stretch/internal/sink"
	"github.com/tphakala/go-audio-stretch/internal/wavfile"
)

// Sink receives the stretched PCM stream.
type Sink interface {
	Write(p []byte) (int, error)

	// Finish completes the output once all frames are written.
	Finish(frames uint32) error

	Close() error
}

// ScaledRate returns the declared output rate when the rate is scaled by the
// primary ratio.
func ScaledRate(sampleRate int, ratio float64) uint32 {
	return uint32(float64(sampleRate)*ratio + rateRounding)
}

// Run stretches the WAV file at inPath into outPath.
//
// Configuration is validated before any file is touched. Input format errors
// leave no output behind, and a run that fails after the output was created
// removes it.
func Run(cfg Config, inPath, outPath string) (stats *Stats, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkPaths(inPath, outPath, cfg.Overwrite); err != nil {
		return nil, err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("can't open file %q for reading: %w", inPath, err)
	}
	defer func() { _ = in.Close() }()

	br := bufio.NewReader(in)
	desc, err := wavfile.ParseHeader(br)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", inPath, err)
	}

	minPeriod, maxPeriod, err := PeriodRange(desc.SampleRate, cfg.LowerHz, cfg.UpperHz)
	if err != nil {
		return nil, err
	}

	mode := SelectMode(cfg, desc.SampleRate)
	dual := mode.Dual

	engine, err := NewEngine(minPeriod, maxPeriod, desc.Channels, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	defer engine.Close()

	gapMode := cfg.GapMode()
	window := WindowFrames(desc.SampleRate, cfg.WindowMs)
	capacity := PlanCapacity(engine, window, MaxReachableRatio(cfg, gapMode, dual))

	declared := uint32(desc.SampleRate)
	if cfg.ScaleRate {
		declared = ScaledRate(desc.SampleRate, cfg.Ratio)
	}

	out, err := openSink(cfg, outPath, desc, declared)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %q", ErrOutputExists, outPath)
		}
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(outPath)
		}
	}()

	stats, err = Process(wavfile.NewPCMReader(br, desc), engine, out, Plan{
		Channels:     desc.Channels,
		SampleRate:   desc.SampleRate,
		WindowFrames: window,
		Capacity:     capacity,
		Ratio:        cfg.Ratio,
		GapRatio:     cfg.GapRatio,
		GapMode:      gapMode,
		ThresholdDB:  cfg.ThresholdDB,
		Cycle:        cfg.Cycle,
		Dual:         dual,
	})
	if err != nil {
		return stats, err
	}

	stats.OutputRate = int(declared)
	stats.ScaledRate = cfg.ScaleRate
	stats.MinPeriod = minPeriod
	stats.MaxPeriod = maxPeriod
	stats.Fast = mode.Fast
	if desc.Extensible() {
		stats.SubFormat = desc.SubFormatGUID
	}

	if stats.OutputFrames > uint64(wavfile.MaxFrames(desc.Channels, wavfile.BytesPerSample)) {
		return stats, fmt.Errorf("%w: %d frames", wavfile.ErrDataTooLarge, stats.OutputFrames)
	}
	if err = out.Finish(uint32(stats.OutputFrames)); err != nil {
		return stats, err
	}
	if err = out.Close(); err != nil {
		return stats, fmt.Errorf("close %q: %w", outPath, err)
	}
	return stats, nil
}

// checkPaths refuses to write over the input and, unless overwrite is set,
// over any existing file.
func checkPaths(inPath, outPath string, overwrite bool) error {
	inAbs, err := filepath.Abs(inPath)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", inPath, err)
	}
	outAbs, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", outPath, err)
	}
	if inAbs == outAbs {
		return ErrSamePath
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		// A missing output is the normal case.
		return nil
	}
	if inInfo, err := os.Stat(inPath); err == nil && os.SameFile(inInfo, outInfo) {
		return ErrSamePath
	}
	if !overwrite {
		return fmt.Errorf("%w: %q", ErrOutputExists, outPath)
	}
	return nil
}

func openSink(cfg Config, outPath string, desc *wavfile.Descriptor, declared uint32) (Sink, error) {
	if !cfg.ScaleRate {
		return sink.CreateFile(outPath, desc.Channels, declared, cfg.Overwrite)
	}

	switch cfg.Rescale {
	case RescaleResample:
		file, err := sink.CreateFile(outPath, desc.Channels, uint32(desc.SampleRate), cfg.Overwrite)
		if err != nil {
			return nil, err
		}
		s, err := sink.NewResample(file, int(declared))
		if err != nil {
			_ = file.Close()
			_ = os.Remove(outPath)
			return nil, err
		}
		return s, nil
	case RescaleExec:
		return sink.StartExec(cfg.RescaleCommand, sink.ExecParams{
			Rate:     int(declared),
			OutRate:  desc.SampleRate,
			Channels: desc.Channels,
			Output:   outPath,
		})
	default:
		return sink.CreateFile(outPath, desc.Channels, declared, cfg.Overwrite)
	}
}
