package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// AdmissionEvent is published when a task is denied admission.
type AdmissionEvent struct {
	TaskID         string `json:"task_id"`
	WorkflowID     string `json:"workflow_id,omitempty"`
	Category       string `json:"category,omitempty"`
	Path           string `json:"path"`
	Reason         string `json:"reason"`
	PendingBytes   int64  `json:"pending_write_bytes"`
	AvailableBytes uint64 `json:"available_bytes,omitempty"`
	ThresholdBytes uint64 `json:"threshold_bytes"`
	Message        string `json:"message,omitempty"`
}

// CategoryEvent is published when a task reference is added to a category.
type CategoryEvent struct {
	Category string `json:"category"`
	TaskID   string `json:"task_id"`
	Members  int    `json:"members"`
}

const (
	ChannelAdmission = "dg:events:admission"
	ChannelCategory  = "dg:events:category"

	EventAdmissionDenied = "admission.denied"
	EventCategoryMember  = "category.member_added"
)

type Bus struct {
	client redis.UniversalClient
}

func NewBus(client redis.UniversalClient) *Bus {
	return &Bus{client: client}
}

func NewEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}, nil
}

func (b *Bus) Publish(ctx context.Context, channel string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe streams events from channels until ctx is cancelled. The
// returned channel is closed once ctx is done, even if the consumer stopped
// reading. Undecodable messages are dropped.
func (b *Bus) Subscribe(ctx context.Context, channels ...string) <-chan *Event {
	sub := b.client.Subscribe(ctx, channels...)
	ch := make(chan *Event, 100)

	go func() {
		defer close(ch)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case ch <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()

	return ch
}
