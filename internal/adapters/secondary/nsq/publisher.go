package nsq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"

	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// Publisher delivers notifications to NSQ, one topic per notification kind.
// Downstream consumers (push gateway, digest builder) subscribe to the kinds
// they care about.
type Publisher struct {
	producer *nsq.Producer
}

func NewPublisher(nsqdAddr string) (*Publisher, error) {
	producer, err := nsq.NewProducer(nsqdAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create nsq producer: %w", err)
	}
	if err := producer.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping nsqd: %w", err)
	}
	return &Publisher{producer: producer}, nil
}

type message struct {
	ID        string            `json:"id"`
	ClubID    string            `json:"club_id"`
	Payload   map[string]string `json:"payload"`
	Timestamp int64             `json:"timestamp"`
}

func (p *Publisher) Notify(_ context.Context, n secondary.Notification) error {
	body, err := json.Marshal(message{
		ID:        uuid.NewString(),
		ClubID:    n.ClubID,
		Payload:   n.Payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return p.producer.Publish(n.Kind, body)
}

func (p *Publisher) Stop() {
	p.producer.Stop()
}
