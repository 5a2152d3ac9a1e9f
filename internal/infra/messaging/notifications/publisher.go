package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublish возвращается, когда сообщение не удалось отправить в очередь
var ErrPublish = errors.New("notifications: failed to publish event")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher отправляет события о записях в очередь RabbitMQ
type Publisher struct {
	channel *amqp.Channel
	queue   string
	log     Logger
}

// NewPublisher открывает канал и объявляет устойчивую очередь
func NewPublisher(conn *amqp.Connection, queue string, log Logger) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrPublish, queue, err)
	}

	return &Publisher{channel: channel, queue: queue, log: log}, nil
}

// Publish отправляет событие как persistent JSON-сообщение
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	message, err := Encode(event)
	if err != nil {
		return err
	}

	if err := p.channel.PublishWithContext(ctx, "", p.queue, false, false, message); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Notifications: published %s for appointment %s", event.Type, event.ShortID)
	return nil
}

// Close закрывает канал
func (p *Publisher) Close() error {
	return p.channel.Close()
}

// Encode упаковывает событие в сообщение AMQP
func Encode(event Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"message_type": "JSON",
		},
		Body: body,
	}, nil
}

// LogPublisher пишет события в лог, когда очередь выключена в конфигурации
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает публикатор в лог
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish пишет событие в лог
func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.log.Info("Notifications: %s for appointment %s (%s %s) not sent, queue disabled",
		event.Type, event.ShortID, event.Slot.Date, event.Slot.HourLabel)
	return nil
}
