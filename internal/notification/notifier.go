package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bimbingan_service/internal/utils"
)

type Kind string

const (
	KindNewSubmission Kind = "bimbingan_baru"
	KindFeedback      Kind = "feedback_bimbingan"
	KindReminder      Kind = "pengingat_bimbingan"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindNewSubmission, KindFeedback, KindReminder:
		return true
	}
	return false
}

// Result is the outcome of a single delivery attempt. A failed result is never an error for the caller.
type Result struct {
	Success bool
	Reason  string
}

type Notifier interface {
	Notify(ctx context.Context, phone string, kind Kind, args ...string) Result
}

// Message is the payload published to the notification topic.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Kind      Kind      `json:"kind"`
	Args      []string  `json:"args"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Send(ctx context.Context, topic, key string, message interface{}) error
}

// KafkaNotifier hands notifications to the delivery worker through Kafka.
type KafkaNotifier struct {
	publisher Publisher
	topic     string
	breaker   *utils.CircuitBreaker
}

func NewKafkaNotifier(publisher Publisher, topic string, breaker *utils.CircuitBreaker) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic, breaker: breaker}
}

func (n *KafkaNotifier) Notify(ctx context.Context, phone string, kind Kind, args ...string) Result {
	if phone == "" {
		return Result{Reason: "empty phone number"}
	}
	if !kind.IsValid() {
		return Result{Reason: "unknown notification kind " + string(kind)}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Result{Reason: err.Error()}
	}
	if args == nil {
		args = []string{}
	}
	msg := Message{
		ID:        id,
		Phone:     phone,
		Kind:      kind,
		Args:      args,
		CreatedAt: time.Now().UTC(),
	}

	err = n.breaker.Execute(func() error {
		return n.publisher.Send(ctx, n.topic, phone, msg)
	})
	if err != nil {
		if errors.Is(err, utils.ErrCircuitOpen) {
			return Result{Reason: "notification channel unavailable"}
		}
		return Result{Reason: err.Error()}
	}
	return Result{Success: true}
}
