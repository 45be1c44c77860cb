package social

import (
	"context"
)

// Update is one inbound chat message.
type Update struct {
	ChatID string
	Text   string
	From   string
}

type BotCommand struct {
	Text        string
	Description string
}

const ActionTyping = "typing"

// MessengerProvider is a chat platform connection.
type MessengerProvider interface {
	GetName() string
	GetUpdates(ctx context.Context) (<-chan Update, error)
	SendMessage(chatID string, text string) error
	SendAction(chatID string, action string) error
	SetCommands(commands []BotCommand) error
}
