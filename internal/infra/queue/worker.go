package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/obaturn/Property-Managment-Backend/internal/infra/integration/kommo"
	"github.com/obaturn/Property-Managment-Backend/internal/metrics"
)

// CRMClient is the downstream the worker syncs confirmed bookings into.
type CRMClient interface {
	SyncLead(input kommo.SyncLeadInput) (int, error)
}

// Worker consumes booking events and mirrors them into the external CRM.
// It is fully decoupled from the request path: a dead CRM only fills the DLQ.
type Worker struct {
	Channel *amqp.Channel
	CRM     CRMClient
}

func NewWorker(ch *amqp.Channel, crm CRMClient) *Worker {
	return &Worker{Channel: ch, CRM: crm}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ rabbitmq consumer registration failed: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload BookingEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed booking event, sending to DLQ: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				log.Printf("❌ [WORKER] CRM sync failed for %s: %s", payload.LeadEmail, err)
				metrics.IntegrationErrors.WithLabelValues("crm").Inc()
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] booking-event worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload BookingEventPayload) error {
	switch payload.Event {
	case "booking_confirmed", "lead_captured":
		_, err := w.CRM.SyncLead(kommo.SyncLeadInput{
			Name:            payload.LeadName,
			Email:           payload.LeadEmail,
			Phone:           payload.LeadPhone,
			PropertyAddress: payload.PropertyAddress,
			MeetingTime:     payload.MeetingTime,
			Source:          payload.Source,
		})
		return err
	default:
		// Unknown event types are acked and dropped; there is nobody to
		// handle them and redelivery would not change that.
		log.Printf("⚠️ [WORKER] unknown event type %q, dropping", payload.Event)
		return nil
	}
}
