package social

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramProvider struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramProvider(token string) (*TelegramProvider, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramProvider{bot: bot}, nil
}

func (p *TelegramProvider) GetName() string {
	return p.bot.Self.UserName
}

func (p *TelegramProvider) GetUpdates(ctx context.Context) (<-chan Update, error) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	tgUpdates := p.bot.GetUpdatesChan(u)

	updates := make(chan Update)
	go func() {
		defer close(updates)
		defer p.bot.StopReceivingUpdates()
		for {
			select {
			case <-ctx.Done():
				return
			case tgUpdate, ok := <-tgUpdates:
				if !ok {
					return
				}
				if tgUpdate.Message == nil {
					continue
				}

				from := ""
				if tgUpdate.Message.From != nil {
					from = "@" + tgUpdate.Message.From.UserName
					if tgUpdate.Message.From.UserName == "" {
						from = strconv.FormatInt(tgUpdate.Message.From.ID, 10)
					}
				}

				select {
				case updates <- Update{
					ChatID: strconv.FormatInt(tgUpdate.Message.Chat.ID, 10),
					Text:   tgUpdate.Message.Text,
					From:   from,
				}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("telegram: invalid chat id %q: %w", chatID, err)
	}
	return id, nil
}

func (p *TelegramProvider) SendMessage(chatID string, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	_, err = p.bot.Send(tgbotapi.NewMessage(id, text))
	return err
}

func (p *TelegramProvider) SendAction(chatID string, action string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	tgAction := ""
	switch action {
	case ActionTyping:
		tgAction = tgbotapi.ChatTyping
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	_, err = p.bot.Request(tgbotapi.NewChatAction(id, tgAction))
	return err
}

func (p *TelegramProvider) SetCommands(commands []BotCommand) error {
	tgCommands := make([]tgbotapi.BotCommand, len(commands))
	for i, c := range commands {
		tgCommands[i] = tgbotapi.BotCommand{
			Command:     c.Text,
			Description: c.Description,
		}
	}
	_, err := p.bot.Request(tgbotapi.NewSetMyCommands(tgCommands...))
	return err
}
