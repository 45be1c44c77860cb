package social

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type DiscordProvider struct {
	session *discordgo.Session
}

func NewDiscordProvider(token string) (*DiscordProvider, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent
	return &DiscordProvider{session: dg}, nil
}

func (p *DiscordProvider) GetName() string {
	if p.session.State != nil && p.session.State.User != nil {
		return p.session.State.User.Username
	}
	return "DiscordBot"
}

func (p *DiscordProvider) GetUpdates(ctx context.Context) (<-chan Update, error) {
	updates := make(chan Update)

	remove := p.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
			return
		}

		from := fmt.Sprintf("%s#%s", m.Author.Username, m.Author.Discriminator)
		if m.Author.Discriminator == "0" || m.Author.Discriminator == "" {
			from = m.Author.Username
		}

		select {
		case updates <- Update{ChatID: m.ChannelID, Text: m.Content, From: from}:
		case <-ctx.Done():
		}
	})

	if err := p.session.Open(); err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}

	// updates is left open: a handler already in flight may still be
	// selecting on it. Consumers stop on ctx.
	go func() {
		<-ctx.Done()
		remove()
		p.session.Close()
	}()

	return updates, nil
}

func (p *DiscordProvider) SendMessage(chatID string, text string) error {
	_, err := p.session.ChannelMessageSend(chatID, text)
	return err
}

func (p *DiscordProvider) SendAction(chatID string, action string) error {
	if action == ActionTyping {
		return p.session.ChannelTyping(chatID)
	}
	return fmt.Errorf("unknown action: %s", action)
}

// SetCommands is a no-op: slash commands need application command
// registration, and every message is answered by the responder anyway.
func (p *DiscordProvider) SetCommands(commands []BotCommand) error {
	return nil
}
