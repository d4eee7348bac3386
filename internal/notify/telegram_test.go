package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifier_Notify(t *testing.T) {
	logger := zerolog.New(io.Discard)
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, []int64{100, 200}, &logger)

	err := n.Notify(context.Background(), "New reservation OVR-2026-0001")
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, int64(100), sender.sent[0].ChatID)
	assert.Equal(t, "New reservation OVR-2026-0001", sender.sent[0].Text)
}

func TestTelegramNotifier_NotifyError(t *testing.T) {
	logger := zerolog.New(io.Discard)
	sender := &fakeSender{err: errors.New("telegram down")}
	n := NewTelegramNotifierWithSender(sender, []int64{100}, &logger)

	err := n.Notify(context.Background(), "text")
	assert.Error(t, err)
}

func TestTelegramNotifier_CancelledContext(t *testing.T) {
	logger := zerolog.New(io.Discard)
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, []int64{100}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.Notify(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}
