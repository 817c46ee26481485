// Package stretch changes the duration of 16-bit PCM WAV audio without
// changing its pitch.
//
// The work is done by a time-domain harmonic scaling engine (internal/tdhs)
// that repeats or drops whole pitch periods. This package drives it: it
// reads the input window by window, chooses a ratio for every window and
// checks that each engine call stays inside the output capacity planned
// for the session.
//
// # Ratios
//
// Every window is stretched with one of three ratios:
//
//   - the primary ratio (Config.Ratio), 0.25 to 4.0
//   - the gap ratio (Config.GapRatio) once three consecutive windows
//     around the current one are below the silence threshold
//   - a sinusoidal sweep through the whole engine range when cycling is
//     enabled (Config.Cycle), driven by the output position
//
// Ratios outside [0.5, 2] need the engine's dual-instance mode, which
// SelectMode enables automatically.
//
// # Quick Start
//
//	cfg := stretch.DefaultConfig()
//	cfg.Ratio = 1.25
//	stats, err := stretch.Run(cfg, "in.wav", "out.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d -> %d frames\n", stats.InputFrames, stats.OutputFrames)
//
// # Rate Scaling
//
// With Config.ScaleRate the declared output rate is multiplied by the
// primary ratio, so the result plays in the original duration at a shifted
// pitch. Config.Rescale chooses how that stream is delivered: as a WAV
// header at the scaled rate, converted back to the input rate in process,
// or piped as raw PCM into an external command.
//
// # Lower-Level API
//
// Process runs the window loop over any FrameReader, Engine and io.Writer,
// so audio can be stretched in memory. NewEngine creates the engine Run
// uses; see examples/basic.
package stretch
