// Package notify delivers staff notifications about reservation and billing
// activity over Telegram.
package notify

import (
	"context"
	"fmt"

	"oceanview/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the slice of the Telegram bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot     Sender
	chatIDs []int64
	logger  *zerolog.Logger
}

// NewTelegramNotifier connects the bot. An empty token yields a nil
// notifier, which callers treat as notifications disabled.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	if cfg.BotToken == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug

	logger.Info().Str("bot", bot.Self.UserName).Int("chats", len(cfg.ChatIDs)).Msg("telegram notifier connected")

	return &TelegramNotifier{
		bot:     bot,
		chatIDs: cfg.ChatIDs,
		logger:  logger,
	}, nil
}

// NewTelegramNotifierWithSender wires an existing sender, used in tests.
func NewTelegramNotifierWithSender(bot Sender, chatIDs []int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  logger,
	}
}

// Notify fans the text out to every configured chat. Delivery is
// best-effort per chat; the first error is returned after all sends.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	var firstErr error
	for _, chatID := range n.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", chatID).Msg("telegram send failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
