// Package crm exports captured leads to RabbitMQ for downstream CRM consumers.
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

const (
	ExchangeName       = "leads"
	RoutingKeyCaptured = "lead.captured"
)

// LeadEvent is the JSON body of a lead.captured message
type LeadEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Lead       LeadDTO   `json:"lead"`
}

type LeadDTO struct {
	UserID            int64      `json:"user_id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Source            string     `json:"source"`
	Geography         string     `json:"geography"`
	ObjectType        string     `json:"object_type"`
	Condition         string     `json:"condition"`
	Metrage           int        `json:"metrage"`
	RepairFormat      string     `json:"repair_format"`
	KeysReady         string     `json:"keys_ready"`
	Deadline          string     `json:"deadline"`
	MainFear          string     `json:"main_fear"`
	Budget            string     `json:"budget"`
	AppointmentStatus string     `json:"appointment_status"`
	StartTime         *time.Time `json:"start_time,omitempty"`
}

func newLeadDTO(l models.Lead) LeadDTO {
	return LeadDTO{
		UserID:            l.UserID,
		Name:              l.Name,
		Phone:             l.Phone,
		Source:            l.Source,
		Geography:         l.Geography,
		ObjectType:        l.ObjectType,
		Condition:         l.Condition,
		Metrage:           l.Metrage,
		RepairFormat:      l.RepairFormat,
		KeysReady:         l.KeysReady,
		Deadline:          l.Deadline,
		MainFear:          l.MainFear,
		Budget:            l.Budget,
		AppointmentStatus: string(l.AppointmentStatus),
		StartTime:         l.StartTime,
	}
}

// channel is the part of *amqp.Channel the publisher needs
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch  channel
	now func() time.Time
}

func NewPublisher(ch channel) *Publisher {
	return &Publisher{ch: ch, now: time.Now}
}

// PublishLead sends a persistent lead.captured event
func (p *Publisher) PublishLead(ctx context.Context, lead models.Lead) error {
	event := LeadEvent{
		EventID:    uuid.NewString(),
		OccurredAt: p.now().UTC(),
		Lead:       newLeadDTO(lead),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKeyCaptured,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead %d: %w", lead.UserID, err)
	}
	return nil
}

// Connection owns the broker connection and the channel used by the publisher
type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// Dial connects to the broker and declares the durable topic exchange
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	return &Connection{Conn: conn, Ch: ch}, nil
}

func (c *Connection) Close() error {
	if c.Ch != nil {
		c.Ch.Close()
	}
	return c.Conn.Close()
}
