package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"
)

// Publisher публикует событие с указанным ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Channel минимальная часть *amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage публикует сообщение в RabbitMQ в формате JSON.
func PublishMessage(ch Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChannelPublisher публикует события в Exchange через открытый канал.
type ChannelPublisher struct {
	ch       Channel
	exchange string
}

// NewChannelPublisher создаёт ChannelPublisher поверх канала.
func NewChannelPublisher(ch Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, exchange: Exchange}
}

// Publish реализует Publisher.
func (p *ChannelPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("rabbitmq.Publish: %w", err)
	}
	return PublishMessage(p.ch, p.exchange, routingKey, message)
}

// NoopPublisher используется, когда брокер не настроен: события только логируются.
type NoopPublisher struct {
	log *slog.Logger
}

// NewNoopPublisher создаёт NoopPublisher.
func NewNoopPublisher(log *slog.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish реализует Publisher.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, message any) error {
	p.log.Debug("broker disabled, event dropped", slog.String("routing_key", routingKey), slog.Any("event", message))
	return nil
}
