package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/nathfavour/blubot/pkg/surface"
)

const (
	PlatformTelegram = "telegram"
	PlatformDiscord  = "discord"
)

var ErrBotNotFound = errors.New("bot not found")

// Matcher answers utterances. *responder.Responder satisfies it.
type Matcher interface {
	Match(utterance string) responder.Match
}

// TokenSource resolves secrets by key. *vault.Vault satisfies it.
type TokenSource interface {
	Get(key string) (string, error)
}

// ProviderFactory opens a platform connection for a bot.
type ProviderFactory func(cfg BotConfig, token string) (MessengerProvider, error)

type BotConfig struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

// TokenKey is the vault key holding the token of the named bot.
func TokenKey(platform, name string) string {
	return strings.ToUpper(platform) + "_TOKEN_" + strings.ToUpper(name)
}

// NewProvider opens the real Telegram or Discord connection for cfg.
func NewProvider(cfg BotConfig, token string) (MessengerProvider, error) {
	switch cfg.Platform {
	case PlatformTelegram:
		return NewTelegramProvider(token)
	case PlatformDiscord:
		return NewDiscordProvider(token)
	default:
		return nil, fmt.Errorf("unsupported platform: %s", cfg.Platform)
	}
}

// BotManager keeps the registry of configured bots.
type BotManager struct {
	bots []BotConfig
	mu   sync.RWMutex
	path string
}

func NewBotManager(path string) (*BotManager, error) {
	bm := &BotManager{path: path}
	if err := bm.load(); err != nil {
		return nil, err
	}
	return bm, nil
}

func (bm *BotManager) load() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	data, err := os.ReadFile(bm.path)
	if errors.Is(err, os.ErrNotExist) {
		bm.bots = []BotConfig{}
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &bm.bots); err != nil {
		return fmt.Errorf("load bots from %s: %w", bm.path, err)
	}
	return nil
}

func (bm *BotManager) save() error {
	data, err := json.MarshalIndent(bm.bots, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(bm.path, data, 0600)
}

func (bm *BotManager) AddBot(cfg BotConfig) (BotConfig, error) {
	if cfg.Name == "" {
		return BotConfig{}, errors.New("bot name is required")
	}
	if cfg.Platform != PlatformTelegram && cfg.Platform != PlatformDiscord {
		return BotConfig{}, fmt.Errorf("unsupported platform: %s", cfg.Platform)
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	for _, b := range bm.bots {
		if b.Name == cfg.Name {
			return BotConfig{}, fmt.Errorf("bot %q already exists", cfg.Name)
		}
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	bm.bots = append(bm.bots, cfg)
	return cfg, bm.save()
}

func (bm *BotManager) RemoveBot(name string) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for i, b := range bm.bots {
		if b.Name == name {
			bm.bots = append(bm.bots[:i], bm.bots[i+1:]...)
			return bm.save()
		}
	}
	return fmt.Errorf("%w: %s", ErrBotNotFound, name)
}

func (bm *BotManager) ListBots() []BotConfig {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return append([]BotConfig(nil), bm.bots...)
}

// Gateway relays messenger traffic to the responder.
type Gateway struct {
	Matcher  Matcher
	Pacer    *surface.Pacer
	Recorder stats.Recorder
	Tokens   TokenSource
	Factory  ProviderFactory
}

// ErrNoBotsStarted is returned by StartBots when no registered bot could
// be connected.
var ErrNoBotsStarted = errors.New("no bots started")

// StartBots connects every registered bot and serves until ctx ends. A bot
// that fails to start is logged and skipped.
func (bm *BotManager) StartBots(ctx context.Context, gw *Gateway) error {
	bots := bm.ListBots()
	if len(bots) == 0 {
		return errors.New("no bots registered")
	}

	var wg sync.WaitGroup
	started := 0
	for _, cfg := range bots {
		token, err := gw.Tokens.Get(TokenKey(cfg.Platform, cfg.Name))
		if err != nil {
			slog.Error("missing bot token", "bot", cfg.Name, "platform", cfg.Platform, "error", err)
			continue
		}
		factory := gw.Factory
		if factory == nil {
			factory = NewProvider
		}
		p, err := factory(cfg, token)
		if err != nil {
			slog.Error("failed to start bot", "bot", cfg.Name, "platform", cfg.Platform, "error", err)
			continue
		}

		started++
		wg.Add(1)
		go func(cfg BotConfig, p MessengerProvider) {
			defer wg.Done()
			if err := gw.Serve(ctx, cfg.Platform, p); err != nil {
				slog.Error("bot stopped", "bot", cfg.Name, "error", err)
			}
		}(cfg, p)
	}
	if started == 0 {
		return fmt.Errorf("%w: %d registered, none connected", ErrNoBotsStarted, len(bots))
	}
	wg.Wait()
	return nil
}

var defaultCommands = []BotCommand{
	{Text: "start", Description: "Say hello"},
	{Text: "help", Description: "What can BluBot do?"},
}

// Serve answers every update from p until ctx ends or the update stream
// closes. Each reply is paced independently, so a burst of messages gets
// a burst of replies.
func (gw *Gateway) Serve(ctx context.Context, platform string, p MessengerProvider) error {
	if err := p.SetCommands(defaultCommands); err != nil {
		slog.Warn("failed to set bot commands", "bot", p.GetName(), "error", err)
	}

	updates, err := p.GetUpdates(ctx)
	if err != nil {
		return err
	}

	recorder := gw.Recorder
	if recorder == nil {
		recorder = stats.Discard
	}

	slog.Info("bot started", "bot", p.GetName(), "platform", platform)

	var deliveries sync.WaitGroup
	defer deliveries.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			text, ok := surface.Admit(update.Text)
			if !ok {
				continue
			}

			if err := p.SendAction(update.ChatID, ActionTyping); err != nil {
				slog.Debug("failed to send typing action", "bot", p.GetName(), "error", err)
			}
			match := gw.Matcher.Match(text)
			if err := recorder.Record(platform, match); err != nil {
				slog.Debug("failed to record match", "error", err)
			}

			chatID := update.ChatID
			deliveries.Add(1)
			done := gw.Pacer.Deliver(ctx, func() {
				if err := p.SendMessage(chatID, match.Reply); err != nil {
					slog.Warn("failed to send reply", "bot", p.GetName(), "chat", chatID, "error", err)
				}
			})
			go func() {
				<-done
				deliveries.Done()
			}()
		}
	}
}
