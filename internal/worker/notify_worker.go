// Package worker runs the async notification pipeline: domain events are
// formatted into staff messages and delivered with retry off the request
// path.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oceanview/internal/domain"
	"oceanview/internal/events"
	"oceanview/internal/models"

	"github.com/rs/zerolog"
)

type NotifyWorker struct {
	notifier    domain.Notifier
	retryPolicy RetryPolicy
	queue       chan string
	logger      *zerolog.Logger
}

// NewNotifyWorker builds a worker with sane defaults. A nil notifier makes
// every enqueue a no-op.
func NewNotifyWorker(notifier domain.Notifier, retry RetryPolicy, logger *zerolog.Logger) *NotifyWorker {
	return &NotifyWorker{
		notifier:    notifier,
		retryPolicy: retry.withDefaults(),
		queue:       make(chan string, 128),
		logger:      logger,
	}
}

// Subscribe attaches the worker to the event bus. Handlers only enqueue,
// so publishing never blocks on Telegram.
func (w *NotifyWorker) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventReservationCreated, w.handleReservationEvent("New reservation"))
	bus.Subscribe(events.EventReservationCheckedOut, w.handleReservationEvent("Checked out"))
	bus.Subscribe(events.EventReservationCancelled, w.handleReservationEvent("Cancelled"))
	bus.Subscribe(events.EventBillGenerated, w.handleBillEvent)
}

// Start consumes the queue until the context is done.
func (w *NotifyWorker) Start(ctx context.Context) {
	if w.notifier == nil {
		w.logger.Info().Msg("Notify worker disabled: no notifier configured")
		return
	}

	w.logger.Info().Msg("Notify worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case text := <-w.queue:
			w.deliver(ctx, text)
		}
	}
}

// Enqueue schedules a message. A full queue drops the message rather than
// blocking the caller.
func (w *NotifyWorker) Enqueue(text string) {
	if w.notifier == nil {
		return
	}
	select {
	case w.queue <- text:
	default:
		w.logger.Warn().Msg("notify queue full, message dropped")
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, text string) {
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		err := w.notifier.Notify(ctx, text)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}

		w.logger.Warn().Err(err).Int("attempt", attempt).Msg("notification delivery failed")
		if attempt == w.retryPolicy.MaxRetries {
			w.logger.Error().Err(err).Msg("notification dropped after retries")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}
}

func (w *NotifyWorker) handleReservationEvent(verb string) events.EventHandler {
	return func(event *events.Event) error {
		var payload events.ReservationEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			w.logger.Error().Err(err).Str("event_type", event.Type).Msg("decode event payload")
			return err
		}

		w.Enqueue(fmt.Sprintf("%s %s: %s, room %s (%s), %s to %s, total %s",
			verb,
			payload.ReservationNumber,
			payload.GuestName,
			payload.RoomNumber,
			payload.RoomType,
			payload.CheckIn.Format("2006-01-02"),
			payload.CheckOut.Format("2006-01-02"),
			models.FormatCents(payload.TotalCents),
		))
		return nil
	}
}

func (w *NotifyWorker) handleBillEvent(event *events.Event) error {
	var payload events.BillEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		w.logger.Error().Err(err).Str("event_type", event.Type).Msg("decode event payload")
		return err
	}

	w.Enqueue(fmt.Sprintf("Bill generated for %s (%s): total %s",
		payload.ReservationNumber,
		payload.GuestName,
		models.FormatCents(payload.TotalCents),
	))
	return nil
}
