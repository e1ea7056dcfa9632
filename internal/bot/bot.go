// Package bot is a Telegram front-end over the budget service: quick entry,
// monthly totals, the calendar glance and a pie chart.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// requestTimeout bounds the work done for one update.
const requestTimeout = 10 * time.Second

// Bot polls Telegram for updates and answers commands.
type Bot struct {
	api      *tgbotapi.BotAPI
	commands *Commands
}

// New connects to Telegram with token.
func New(token string, commands *Commands) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	slog.Info("Telegram bot authorized", "username", api.Self.UserName)
	return &Bot{api: api, commands: commands}, nil
}

// Run long-polls for updates until ctx is cancelled. Updates are handled one
// at a time.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || !msg.IsCommand() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	slog.Info("Bot command received", "command", msg.Command(), "user_id", UserID(msg.From.ID))

	replies, err := b.commands.Handle(ctx, msg.From.ID, msg.Command(), msg.CommandArguments())
	if err != nil {
		slog.Error("Bot command failed", "command", msg.Command(), "error", err)
		replies = text("Something went wrong, please try again later.")
	}

	for _, r := range replies {
		if err := b.send(msg.Chat.ID, r); err != nil {
			slog.Error("Failed to send reply", "chat_id", msg.Chat.ID, "error", err)
			return
		}
	}
}

func (b *Bot) send(chatID int64, r Reply) error {
	if r.Photo != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: r.Photo})
		photo.Caption = r.Text
		_, err := b.api.Send(photo)
		return err
	}

	out := tgbotapi.NewMessage(chatID, r.Text)
	if strings.HasPrefix(r.Text, "```") {
		out.ParseMode = tgbotapi.ModeMarkdownV2
	}
	_, err := b.api.Send(out)
	return err
}
