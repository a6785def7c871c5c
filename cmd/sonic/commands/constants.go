package commands

const (
	// Demo signal defaults.
	defaultDemoRate      = 22050
	defaultDemoFrequency = 440.0
	defaultDemoSeconds   = 1.0
	demoAmplitude        = 10000.0

	// defaultInfoRate is the sample rate the info command reports on.
	defaultInfoRate = 44100

	bytesPerKilobyte = 1024

	// WAV output format.
	outputBitDepth  = 16
	wavFormatPCM    = 1
	outputFilePerms = 0o644

	// Sample conversion.
	unsigned8Offset = 128
	shift8To16      = 8
	shift24To16     = 8
	shift32To16     = 16
)
