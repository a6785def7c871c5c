package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sonic "github.com/tphakala/go-audio-sonic"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sonic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.InDelta(t, sonic.DefaultSpeed, cfg.Stream.Speed, 0)
	assert.InDelta(t, sonic.DefaultPitch, cfg.Stream.Pitch, 0)
	assert.InDelta(t, sonic.DefaultVolume, cfg.Stream.Volume, 0)
	assert.Equal(t, "fast", cfg.Stream.Quality)
	assert.Equal(t, DefaultChunkSize, cfg.Stream.ChunkSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Stderr)
	assert.False(t, cfg.Log.File.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
stream:
  speed: 2.0
  pitch: 1.5
  volume: 0.5
  quality: high
  chunk_size: 1024
log:
  level: debug
  file:
    enabled: true
    max_backups: 5
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, cfg.Stream.Speed, 0)
	assert.InDelta(t, 1.5, cfg.Stream.Pitch, 0)
	assert.InDelta(t, 0.5, cfg.Stream.Volume, 0)
	assert.Equal(t, "high", cfg.Stream.Quality)
	assert.Equal(t, 1024, cfg.Stream.ChunkSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, 5, cfg.Log.File.MaxBackups)
	assert.Equal(t, "sonic.log", cfg.Log.File.Name)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SONIC_STREAM_SPEED", "3")
	t.Setenv("SONIC_LOG_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, cfg.Stream.Speed, 0)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "stream:\n  speed: 2.0\n  pitch: 1.5\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("speed", 1.0, "")
	flags.Float64("pitch", 1.0, "")
	flags.String("quality", "fast", "")
	require.NoError(t, flags.Parse([]string{"--speed", "0.5", "--quality", "high"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, cfg.Stream.Speed, 0)
	// Unchanged flags do not shadow file values.
	assert.InDelta(t, 1.5, cfg.Stream.Pitch, 0)
	assert.Equal(t, "high", cfg.Stream.Quality)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero chunk", func(c *Config) { c.Stream.ChunkSize = 0 }, true},
		{"negative buffer", func(c *Config) { c.Stream.MaxBuffer = -1 }, true},
		{"bad quality", func(c *Config) { c.Stream.Quality = "ultra" }, true},
		{"numeric quality", func(c *Config) { c.Stream.Quality = "1" }, false},
		{"upper case quality", func(c *Config) { c.Stream.Quality = "HIGH" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Stream: StreamConfig{Quality: "fast", ChunkSize: DefaultChunkSize}}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStreamConfig(t *testing.T) {
	cfg := &Config{Stream: StreamConfig{Speed: 2, Pitch: 1.5, Volume: 0, Quality: "high", ChunkSize: 10}}

	sc, err := cfg.StreamConfig(22050)
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	assert.Equal(t, 22050, sc.SampleRate)
	assert.Equal(t, 1, sc.Channels)
	assert.Equal(t, sonic.QualityHigh, sc.Quality)
	assert.True(t, sc.Mute)
}
