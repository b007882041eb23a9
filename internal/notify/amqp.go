package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const mailExchange = "mail_fanout"

// AMQPMailer hands mail jobs to a fanout exchange for an external mail
// worker instead of delivering in-process.
type AMQPMailer struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
}

func NewAMQPMailer(url string) (*AMQPMailer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(mailExchange, "fanout", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPMailer{conn: conn, ch: ch}, nil
}

type mailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *AMQPMailer) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(mailJob{To: to, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = m.ch.PublishWithContext(ctx, mailExchange, "", false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish mail job: %w", err)
	}
	return nil
}

func (m *AMQPMailer) Close() error {
	return m.conn.Close()
}
