package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	sonic "github.com/tphakala/go-audio-sonic"
)

var infoRate int

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show transform parameters for a sample rate",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().IntVar(&infoRate, "rate", defaultInfoRate, "sample rate in Hz")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	streamCfg, err := cfg.StreamConfig(infoRate)
	if err != nil {
		return err
	}
	streamCfg.Logger = log

	stream, err := sonic.New(streamCfg)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	info := stream.GetInfo()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Stream at %d Hz:\n", stream.GetSampleRate())
	fmt.Fprintf(w, "  Algorithm: %s\n", info.Algorithm)
	fmt.Fprintf(w, "  Speed: %.2f  Pitch: %.2f  Volume: %.2f  Quality: %s\n",
		stream.GetSpeed(), stream.GetPitch(), stream.GetVolume(), stream.GetQuality())
	fmt.Fprintf(w, "  Pitch period: %d-%d samples\n", info.MinPeriod, info.MaxPeriod)
	fmt.Fprintf(w, "  Look-ahead: %d samples\n", info.MaxRequired)
	fmt.Fprintf(w, "  Latency: %d samples\n", info.Latency)
	fmt.Fprintf(w, "  Buffer limit: %d samples\n", info.MaxBufferSamples)
	fmt.Fprintf(w, "  Max read: %d samples\n", stream.GetMaxReadSamples())
	fmt.Fprintf(w, "  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Fprintf(w, "  SIMD: %v (%s)\n", info.SIMDEnabled, info.SIMDType)
	return nil
}
