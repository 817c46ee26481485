package wavfile

// Format tags
const (
	FormatPCM        = 0x0001
	FormatExtensible = 0xfffe
)

// Chunk layout
const (
	chunkIDSize      = 4
	chunkHeaderSize  = 8  // ckID + ckSize
	riffHeaderSize   = 12 // "RIFF" + ckSize + "WAVE"
	fmtChunkMinSize  = 16 // plain PCM format body
	fmtChunkMaxSize  = 40 // WAVEFORMATEXTENSIBLE body
	pcmFmtChunkSize  = 16 // body size written by WriteHeader
	riffFormTypeSize = 4

	// HeaderSize is the size of the canonical header emitted by WriteHeader.
	HeaderSize = riffHeaderSize + chunkHeaderSize + pcmFmtChunkSize + chunkHeaderSize
)

// Offsets inside the fmt chunk body
const (
	offFormatTag     = 0
	offChannels      = 2
	offSampleRate    = 4
	offBlockAlign    = 12
	offBitsPerSample = 14
	offValidBits     = 18
	offChannelMask   = 20
	offSubFormat     = 24
	guidSize         = 16
)

// Accepted stream parameters
const (
	BytesPerSample = 2
	SupportedBits  = 16
	MinSampleRate  = 8000
	MaxSampleRate  = 48000
	MinChannels    = 1
	MaxChannels    = 2
	bitsPerByte    = 8
)
