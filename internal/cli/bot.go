package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nathfavour/blubot/pkg/social"
	"github.com/nathfavour/blubot/pkg/vault"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Manage messaging bots (Telegram/Discord)",
}

func botManager(a *app) (*social.BotManager, error) {
	if _, err := a.settings.EnsureDataDir(); err != nil {
		return nil, err
	}
	return social.NewBotManager(a.settings.BotsPath())
}

var botAddCmd = &cobra.Command{
	Use:   "add <name> [token]",
	Short: "Register a new bot; the token is read from stdin when omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		token := ""
		if len(args) == 2 {
			token = args[1]
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return errors.New("token is required")
		}

		bm, err := botManager(a)
		if err != nil {
			return err
		}
		cfg, err := bm.AddBot(social.BotConfig{Name: args[0], Platform: platform})
		if err != nil {
			return err
		}

		v := openVault(a.settings.SecretsPath())
		if err := v.Set(social.TokenKey(cfg.Platform, cfg.Name), token); err != nil {
			_ = bm.RemoveBot(cfg.Name)
			return fmt.Errorf("store token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bot %s [%s] added with token %s.\n", cfg.Name, cfg.Platform, vault.Mask(token))
		return nil
	},
}

var botRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Unregister a bot and forget its token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		bm, err := botManager(a)
		if err != nil {
			return err
		}
		var platform string
		for _, b := range bm.ListBots() {
			if b.Name == args[0] {
				platform = b.Platform
			}
		}
		if err := bm.RemoveBot(args[0]); err != nil {
			return err
		}
		_ = openVault(a.settings.SecretsPath()).Delete(social.TokenKey(platform, args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "Bot %s removed.\n", args[0])
		return nil
	},
}

var botListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered bots",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		bm, err := botManager(a)
		if err != nil {
			return err
		}
		bots := bm.ListBots()
		if len(bots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No bots registered.")
			return nil
		}
		for _, b := range bots {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s] (%s)\n", b.Name, b.Platform, b.ID)
		}
		return nil
	},
}

var botRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect every registered bot and answer messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		bm, err := botManager(a)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return bm.StartBots(ctx, &social.Gateway{
			Matcher:  a.responder,
			Pacer:    a.pacer(),
			Recorder: a.recorder(),
			Tokens:   openVault(a.settings.SecretsPath()),
		})
	},
}

func init() {
	botAddCmd.Flags().StringP("platform", "p", social.PlatformTelegram, "Platform for the bot (telegram/discord)")

	botCmd.AddCommand(botAddCmd)
	botCmd.AddCommand(botRemoveCmd)
	botCmd.AddCommand(botListCmd)
	botCmd.AddCommand(botRunCmd)
	rootCmd.AddCommand(botCmd)
}
