package commands

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	sonic "github.com/tphakala/go-audio-sonic"
	"github.com/tphakala/go-audio-sonic/internal/pcm"
)

var processCmd = &cobra.Command{
	Use:   "process <input.wav> <output.wav>",
	Short: "Change speed, pitch and volume of a WAV file",
	Long: `Reads a PCM WAV file, mixes it down to mono 16-bit, streams it through
the transform in chunks and writes a mono 16-bit WAV file.`,
	Args: cobra.ExactArgs(2),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	inputPath, outputPath := args[0], args[1]

	input, sampleRate, err := readWAV(inputPath)
	if err != nil {
		return err
	}

	streamCfg, err := cfg.StreamConfig(sampleRate)
	if err != nil {
		return err
	}
	streamCfg.Logger = log

	start := time.Now()
	output, err := streamSamples(input, streamCfg, cfg.Stream.ChunkSize)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := writeWAV(outputPath, output, sampleRate); err != nil {
		return err
	}

	log.Info("processed file",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("input_samples", len(input)),
		zap.Int("output_samples", len(output)),
		zap.Duration("elapsed", elapsed))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Input:  %s (%d samples, %.2fs, RMS %.1f)\n",
		inputPath, len(input), seconds(len(input), sampleRate), rms(input))
	fmt.Fprintf(w, "Output: %s (%d samples, %.2fs, RMS %.1f)\n",
		outputPath, len(output), seconds(len(output), sampleRate), rms(output))
	fmt.Fprintf(w, "Settings: speed %.2f, pitch %.2f, volume %.2f, quality %s\n",
		streamCfg.Speed, streamCfg.Pitch, cfg.Stream.Volume, streamCfg.Quality)
	fmt.Fprintf(w, "Time: %v\n", elapsed)
	return nil
}

// streamSamples pushes samples through a stream chunk by chunk using the
// byte interface, draining ready output after every write, then flushes.
func streamSamples(samples []int16, cfg *sonic.Config, chunkSize int) ([]int16, error) {
	stream, err := sonic.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	var out []byte
	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		if err := stream.WriteBytes(pcm.Encode(samples[i:end])); err != nil {
			return nil, fmt.Errorf("failed to write samples %d-%d: %w", i, end, err)
		}
		if out, err = drainBytes(stream, out); err != nil {
			return nil, err
		}
	}

	if _, err := stream.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush: %w", err)
	}
	if out, err = drainBytes(stream, out); err != nil {
		return nil, err
	}

	return pcm.Decode(out)
}

func drainBytes(stream *sonic.Stream, dst []byte) ([]byte, error) {
	for stream.SamplesAvailable() > 0 {
		p, err := stream.ReadBytes(min(stream.SamplesAvailable(), stream.GetMaxReadSamples()))
		if err != nil {
			return nil, fmt.Errorf("failed to read samples: %w", err)
		}
		dst = append(dst, p...)
	}
	return dst, nil
}

func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	x := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = float64(s)
	}
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

func seconds(n, sampleRate int) float64 {
	return float64(n) / float64(sampleRate)
}
