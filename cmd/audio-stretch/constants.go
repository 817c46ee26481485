package main

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1 // configuration, format, I/O or resource errors
	exitUsage    = 2
	exitInternal = 3 // capacity invariant violated
)

const (
	requiredArgs = 2

	internalErrorPrefix = "internal error"
)

// defaultRescaleCommand converts raw PCM at the scaled rate back to the input
// rate with ffmpeg.
const defaultRescaleCommand = "ffmpeg -hide_banner -loglevel error -y " +
	"-f s16le -ar {rate} -ac {channels} -i pipe:0 -ar {outrate} {output}"
