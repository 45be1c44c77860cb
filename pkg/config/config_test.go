package config

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	s := Load(v)

	assert.Equal(t, "BluBot", s.BotName)
	assert.Equal(t, "You", s.UserLabel)
	assert.Equal(t, 600*time.Millisecond, s.ReplyDelay)
	assert.Zero(t, s.ReplyJitter)
	assert.Empty(t, s.RulesFile)
	assert.Equal(t, ":8080", s.ServeAddr)
	assert.True(t, s.StatsEnabled)
	assert.Equal(t, "info", s.LogLevel)
	assert.NotEmpty(t, s.DataDir)
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
bot_name: Sparky
reply_delay: 1s
reply_jitter: -5ms
serve:
  addr: 127.0.0.1:9000
stats:
  enabled: false
`)))

	s := Load(v)
	assert.Equal(t, "Sparky", s.BotName)
	assert.Equal(t, time.Second, s.ReplyDelay)
	assert.Zero(t, s.ReplyJitter)
	assert.Equal(t, "127.0.0.1:9000", s.ServeAddr)
	assert.False(t, s.StatsEnabled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BLUBOT_BOT_NAME", "EnvBot")
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	assert.Equal(t, "EnvBot", Load(v).BotName)
}

func TestSettings_Paths(t *testing.T) {
	dir := t.TempDir()
	s := Settings{DataDir: filepath.Join(dir, "nested")}
	got, err := s.EnsureDataDir()
	require.NoError(t, err)
	assert.DirExists(t, got)
	assert.Equal(t, filepath.Join(dir, "nested", "stats.db"), s.StatsPath())
	assert.Equal(t, filepath.Join(dir, "nested", "secrets.json"), s.SecretsPath())
	assert.Equal(t, filepath.Join(dir, "nested", "bots.json"), s.BotsPath())
}

func TestInitLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLogging(&buf, "warn")
	slog.Info("hidden")
	slog.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
