package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nathfavour/blubot/pkg/config"
	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/rulebook"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/nathfavour/blubot/pkg/surface"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	rulesFile string
)

var rootCmd = &cobra.Command{
	Use:           "blubot",
	Short:         "blubot is a rule-based chat bot",
	Long:          `BluBot answers messages by matching them against an ordered table of keyword rules.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", config.Version, config.Commit, config.BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand: open the terminal chat
		return chatCmd.RunE(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blubot.yaml)")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "rule book file (HJSON or JSON); defaults to the built-in rules")
	_ = viper.BindPFlag(config.KeyRulesFile, rootCmd.PersistentFlags().Lookup("rules"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".blubot")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()
	config.InitLogging(os.Stderr, viper.GetString(config.KeyLogLevel))
	if readErr == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		slog.Warn("failed to read config file", "path", cfgFile, "error", readErr)
	}
}

// app is the wiring shared by the chat surfaces.
type app struct {
	settings  config.Settings
	responder *responder.Responder
	store     *stats.Store
}

func loadApp() (*app, error) {
	s := config.Load(viper.GetViper())

	r, err := rulebook.Open(s.RulesFile)
	if err != nil {
		return nil, err
	}
	a := &app{settings: s, responder: r}

	if s.StatsEnabled {
		if _, err := s.EnsureDataDir(); err != nil {
			return nil, err
		}
		store, err := stats.Open(s.StatsPath())
		if err != nil {
			slog.Warn("statistics disabled", "error", err)
		} else {
			a.store = store
		}
	}
	return a, nil
}

func (a *app) recorder() stats.Recorder {
	if a.store == nil {
		return stats.Discard
	}
	return a.store
}

func (a *app) pacer() *surface.Pacer {
	return surface.NewPacer(a.settings.ReplyDelay, a.settings.ReplyJitter)
}

func (a *app) labels() surface.Labels {
	return surface.Labels{User: a.settings.UserLabel, Bot: a.settings.BotName}
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
