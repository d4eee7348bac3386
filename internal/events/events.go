package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventReservationCreated    = "reservation_created"
	EventReservationCheckedOut = "reservation_checked_out"
	EventReservationCancelled  = "reservation_cancelled"
	EventBillGenerated         = "bill_generated"
)

// ReservationEventPayload describes the minimal reservation snapshot for
// event consumers.
type ReservationEventPayload struct {
	ReservationID     int64     `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
	GuestName         string    `json:"guest_name"`
	RoomID            int64     `json:"room_id"`
	RoomNumber        string    `json:"room_number"`
	RoomType          string    `json:"room_type"`
	Status            string    `json:"status"`
	CheckIn           time.Time `json:"check_in"`
	CheckOut          time.Time `json:"check_out"`
	TotalCents        int64     `json:"total_cents"`
	ActorID           int64     `json:"actor_id,omitempty"`
}

// BillEventPayload describes a freshly generated bill.
type BillEventPayload struct {
	BillID            int64  `json:"bill_id"`
	ReservationID     int64  `json:"reservation_id"`
	ReservationNumber string `json:"reservation_number"`
	GuestName         string `json:"guest_name"`
	TotalCents        int64  `json:"total_cents"`
	ActorID           int64  `json:"actor_id,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
	Processed bool
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}

// NewJSONEvent builds an Event with JSON payload for manual publishing.
func NewJSONEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: eventType, Payload: raw, CreatedAt: time.Now()}, nil
}
