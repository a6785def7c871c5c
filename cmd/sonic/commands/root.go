package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tphakala/go-audio-sonic/cmd/sonic/internal/config"
	"github.com/tphakala/go-audio-sonic/cmd/sonic/internal/logger"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Loaded before every command runs.
	globalConfig *config.Config
	log          = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "sonic",
	Short: "Change speed, pitch and volume of mono 16-bit audio",
	Long: `sonic - streaming speed, pitch and volume transform for mono 16-bit PCM.

Settings are read, lowest priority first, from built-in defaults, a YAML
file (--config, or ./sonic.yaml when present), SONIC_* environment
variables (SONIC_STREAM_SPEED, SONIC_LOG_LEVEL, ...) and flags.

Examples:
  # Play back twice as fast at half volume, pitch raised by half
  sonic process --speed 2 --volume 0.5 --pitch 1.5 in.wav out.wav

  # Compare settings on a synthetic tone
  sonic demo --quality high`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./sonic.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.Bool("log-file", false, "also write logs to a rotating file")

	flags.Float64("speed", 1.0, "speed factor [0.2, 6]")
	flags.Float64("pitch", 1.0, "pitch factor [0.2, 6]")
	flags.Float64("volume", 1.0, "volume factor [0, 2]")
	flags.String("quality", "fast", "quality (fast, high)")
	flags.Int("chunk-size", config.DefaultChunkSize, "samples written per chunk")
	flags.Bool("no-simd", false, "disable SIMD vector operations")
}

func initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	globalConfig = cfg
	log = l
	return nil
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		return nil, errors.New("config not loaded")
	}
	return globalConfig, nil
}

// IsVerbose reports whether verbose output was requested.
func IsVerbose() bool {
	return verbose
}
