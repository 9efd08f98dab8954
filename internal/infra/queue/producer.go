package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingEventPayload is published after a booking commit so downstream
// consumers (CRM sync today) see the confirmed state.
type BookingEventPayload struct {
	Event string `json:"event"` // "booking_confirmed", "lead_captured"

	LeadID    string `json:"lead_id"`
	LeadName  string `json:"lead_name"`
	LeadEmail string `json:"lead_email"`
	LeadPhone string `json:"lead_phone,omitempty"`
	Source    string `json:"source,omitempty"`

	PropertyAddress string `json:"property_address,omitempty"`
	AgentName       string `json:"agent_name,omitempty"`
	MeetingID       string `json:"meeting_id,omitempty"`
	MeetingTime     string `json:"meeting_time,omitempty"`
}

type ProducerInterface interface {
	PublishBookingEvent(ctx context.Context, payload BookingEventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishBookingEvent(ctx context.Context, payload BookingEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}
	return nil
}
