// Package kafka publishes persisted notifications to a Kafka topic for
// downstream push and email delivery.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pickup/internal/core/domain/model/notification"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes one message per notification, keyed by recipient so that
// the notifications of a user keep their order within a partition.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(cfg Config) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, topic: cfg.Topic}
}

// Message is the JSON value of a published notification.
type Message struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	EntityID  *string        `json:"entity_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (p *Publisher) Publish(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(notifications))
	for _, n := range notifications {
		value, err := json.Marshal(toMessage(n))
		if err != nil {
			return fmt.Errorf("failed to encode notification %s: %w", n.ID(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(n.RecipientID().String()),
			Value: value,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write messages: %w", err)
	}
	return nil
}

func (p *Publisher) Topic() string {
	return p.topic
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(n *notification.Notification) Message {
	m := Message{
		ID:        n.ID().String(),
		UserID:    n.RecipientID().String(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Message:   n.Message(),
		Data:      n.Data(),
		CreatedAt: n.CreatedAt().UTC(),
	}
	if e := n.EntityID(); e != nil {
		id := e.String()
		m.EntityID = &id
	}
	return m
}
