// Package config loads sonic command settings from defaults, an optional
// YAML file, SONIC_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	sonic "github.com/tphakala/go-audio-sonic"
	"github.com/tphakala/go-audio-sonic/cmd/sonic/internal/logger"
)

const envPrefix = "SONIC"

// Config is the top-level command configuration.
type Config struct {
	Stream StreamConfig  `mapstructure:"stream" yaml:"stream"`
	Log    logger.Config `mapstructure:"log" yaml:"log"`
}

// StreamConfig holds the transform parameters applied to every stream the
// command creates.
type StreamConfig struct {
	Speed       float64 `mapstructure:"speed" yaml:"speed"`
	Pitch       float64 `mapstructure:"pitch" yaml:"pitch"`
	Volume      float64 `mapstructure:"volume" yaml:"volume"`
	Quality     string  `mapstructure:"quality" yaml:"quality"`
	ChunkSize   int     `mapstructure:"chunk_size" yaml:"chunk_size"`
	MaxBuffer   int     `mapstructure:"max_buffer" yaml:"max_buffer"`
	DisableSIMD bool    `mapstructure:"disable_simd" yaml:"disable_simd"`
}

// flagBindings maps configuration keys to command-line flag names.
var flagBindings = map[string]string{
	"stream.speed":        "speed",
	"stream.pitch":        "pitch",
	"stream.volume":       "volume",
	"stream.quality":      "quality",
	"stream.chunk_size":   "chunk-size",
	"stream.disable_simd": "no-simd",
	"log.level":           "log-level",
	"log.format":          "log-format",
	"log.file.enabled":    "log-file",
}

// Load reads configuration. path may be empty, in which case ./sonic.yaml is
// used when present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("sonic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stream.speed", sonic.DefaultSpeed)
	v.SetDefault("stream.pitch", sonic.DefaultPitch)
	v.SetDefault("stream.volume", sonic.DefaultVolume)
	v.SetDefault("stream.quality", sonic.QualityFast.String())
	v.SetDefault("stream.chunk_size", DefaultChunkSize)
	v.SetDefault("stream.max_buffer", 0)
	v.SetDefault("stream.disable_simd", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.stderr", true)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "./logs")
	v.SetDefault("log.file.name", "sonic.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.max_age_days", 7)
	v.SetDefault("log.file.compress", false)
}

// DefaultChunkSize is the number of samples fed to the stream per write.
const DefaultChunkSize = 6400

// Validate checks the stream section. Range checks on speed, pitch and
// volume are left to the stream itself.
func (c *Config) Validate() error {
	if c.Stream.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.Stream.ChunkSize)
	}
	if c.Stream.MaxBuffer < 0 {
		return fmt.Errorf("max_buffer must not be negative, got %d", c.Stream.MaxBuffer)
	}
	if _, err := sonic.ParseQuality(strings.ToLower(c.Stream.Quality)); err != nil {
		return err
	}
	return nil
}

// StreamConfig builds a stream configuration for audio at sampleRate.
func (c *Config) StreamConfig(sampleRate int) (*sonic.Config, error) {
	quality, err := sonic.ParseQuality(strings.ToLower(c.Stream.Quality))
	if err != nil {
		return nil, err
	}
	return &sonic.Config{
		SampleRate:       sampleRate,
		Channels:         1,
		Speed:            c.Stream.Speed,
		Pitch:            c.Stream.Pitch,
		Volume:           c.Stream.Volume,
		Mute:             c.Stream.Volume == 0,
		Quality:          quality,
		MaxBufferSamples: c.Stream.MaxBuffer,
		DisableSIMD:      c.Stream.DisableSIMD,
	}, nil
}
