package sink

const (
	// writeBufferSize is the buffered writer size for WAV output.
	writeBufferSize = 256 * 1024

	// outputFileMode is the permission of created output files.
	outputFileMode = 0o644
)

// Exec template placeholders
const (
	placeholderRate     = "{rate}"
	placeholderOutRate  = "{outrate}"
	placeholderChannels = "{channels}"
	placeholderOutput   = "{output}"
)
