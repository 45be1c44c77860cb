package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const EnvPrefix = "BLUBOT"

// Keys understood by Load.
const (
	KeyDataDir      = "data_dir"
	KeyBotName      = "bot_name"
	KeyUserLabel    = "user_label"
	KeyReplyDelay   = "reply_delay"
	KeyReplyJitter  = "reply_jitter"
	KeyRulesFile    = "rules_file"
	KeyServeAddr    = "serve.addr"
	KeyStatsEnabled = "stats.enabled"
	KeyLogLevel     = "log_level"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	DataDir      string
	BotName      string
	UserLabel    string
	ReplyDelay   time.Duration
	ReplyJitter  time.Duration
	RulesFile    string
	ServeAddr    string
	StatsEnabled bool
	LogLevel     string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyBotName, "BluBot")
	v.SetDefault(KeyUserLabel, "You")
	v.SetDefault(KeyReplyDelay, 600*time.Millisecond)
	v.SetDefault(KeyReplyJitter, time.Duration(0))
	v.SetDefault(KeyRulesFile, "")
	v.SetDefault(KeyServeAddr, ":8080")
	v.SetDefault(KeyStatsEnabled, true)
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads Settings out of v. Negative durations are clamped to zero.
func Load(v *viper.Viper) Settings {
	s := Settings{
		DataDir:      v.GetString(KeyDataDir),
		BotName:      v.GetString(KeyBotName),
		UserLabel:    v.GetString(KeyUserLabel),
		ReplyDelay:   v.GetDuration(KeyReplyDelay),
		ReplyJitter:  v.GetDuration(KeyReplyJitter),
		RulesFile:    v.GetString(KeyRulesFile),
		ServeAddr:    v.GetString(KeyServeAddr),
		StatsEnabled: v.GetBool(KeyStatsEnabled),
		LogLevel:     v.GetString(KeyLogLevel),
	}
	if s.ReplyDelay < 0 {
		s.ReplyDelay = 0
	}
	if s.ReplyJitter < 0 {
		s.ReplyJitter = 0
	}
	if s.DataDir == "" {
		s.DataDir = defaultDataDir()
	}
	return s
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".blubot")
}

// EnsureDataDir creates the data directory if needed and returns it.
func (s Settings) EnsureDataDir() (string, error) {
	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return "", err
	}
	return s.DataDir, nil
}

// StatsPath returns the path to the match statistics database
func (s Settings) StatsPath() string {
	return filepath.Join(s.DataDir, "stats.db")
}

// SecretsPath returns the path to the fallback secrets file
func (s Settings) SecretsPath() string {
	return filepath.Join(s.DataDir, "secrets.json")
}

// BotsPath returns the path to the messenger bot registry
func (s Settings) BotsPath() string {
	return filepath.Join(s.DataDir, "bots.json")
}
