// Package notify implements the post-commit notification fan-out: email to
// the lead, email to the agent, optional SMS, realtime push, and a booking
// event on the queue for downstream consumers.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/queue"
	"github.com/obaturn/Property-Managment-Backend/internal/infra/realtime"
	"github.com/obaturn/Property-Managment-Backend/internal/metrics"
	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

// EmailSender is the slice of the mail package the fan-out needs.
type EmailSender interface {
	SendBookingConfirmation(to, name, agentName, agentPhone, propertyAddress, meetingTime, calendarLink string) error
	SendAgentAssignment(to, agentName, leadName, propertyAddress, meetingTime string) error
}

type SMSSender interface {
	Send(phone, body string) error
}

// FanOut dispatches every channel best-effort from a goroutine. Failures are
// logged and counted, never propagated: by the time the fan-out runs the
// booking is already committed.
type FanOut struct {
	Email    EmailSender
	SMS      SMSSender
	Hub      *realtime.Hub
	Producer queue.ProducerInterface
}

func NewFanOut(email EmailSender, sms SMSSender, hub *realtime.Hub, producer queue.ProducerInterface) *FanOut {
	return &FanOut{Email: email, SMS: sms, Hub: hub, Producer: producer}
}

var _ usecase.Notifier = (*FanOut)(nil)

func (f *FanOut) BookingConfirmed(n usecase.BookingNotification) {
	go func() {
		meetingTime := n.Meeting.DateTime.Format("Mon, 02 Jan 2006 15:04 MST")

		if f.Email != nil {
			agentName, agentPhone, agentEmail := "", "", ""
			if n.Agent != nil {
				agentName, agentPhone, agentEmail = n.Agent.Name, n.Agent.Phone, n.Agent.Email
			}

			if err := f.Email.SendBookingConfirmation(
				n.Lead.Email, n.Lead.Name, agentName, agentPhone,
				n.Property.Address, meetingTime, n.CalendarLink,
			); err != nil {
				log.Printf("⚠️ confirmation email to %s failed: %v", n.Lead.Email, err)
				metrics.IntegrationErrors.WithLabelValues("email").Inc()
			}

			if agentEmail != "" {
				if err := f.Email.SendAgentAssignment(
					agentEmail, agentName, n.Lead.Name, n.Property.Address, meetingTime,
				); err != nil {
					log.Printf("⚠️ agent email to %s failed: %v", agentEmail, err)
					metrics.IntegrationErrors.WithLabelValues("email").Inc()
				}
			}
		}

		if f.SMS != nil && n.Lead.Phone != "" {
			body := "Your viewing of " + n.Property.Address + " is confirmed for " + meetingTime + "."
			if err := f.SMS.Send(n.Lead.Phone, body); err != nil {
				log.Printf("⚠️ confirmation SMS to %s failed: %v", n.Lead.Phone, err)
				metrics.IntegrationErrors.WithLabelValues("sms").Inc()
			}
		}

		if f.Hub != nil {
			channel := ""
			if n.Agent != nil {
				channel = n.Agent.Name
			}
			f.Hub.Broadcast(channel, "booking_confirmed", n.Meeting)
		}

		f.publish(queue.BookingEventPayload{
			Event:           "booking_confirmed",
			LeadID:          n.Lead.ID,
			LeadName:        n.Lead.Name,
			LeadEmail:       n.Lead.Email,
			LeadPhone:       n.Lead.Phone,
			Source:          n.Lead.Source,
			PropertyAddress: n.Property.Address,
			AgentName:       n.Meeting.AssignedTo,
			MeetingID:       n.Meeting.ID,
			MeetingTime:     n.Meeting.DateTime.Format(time.RFC3339),
		})
	}()
}

func (f *FanOut) LeadCaptured(lead *entity.Lead) {
	go func() {
		if f.Hub != nil {
			f.Hub.Broadcast("", "lead_captured", lead)
		}
		f.publish(queue.BookingEventPayload{
			Event:     "lead_captured",
			LeadID:    lead.ID,
			LeadName:  lead.Name,
			LeadEmail: lead.Email,
			LeadPhone: lead.Phone,
			Source:    lead.Source,
		})
	}()
}

func (f *FanOut) MeetingScheduled(meeting *entity.Meeting) {
	go func() {
		if f.Hub != nil {
			f.Hub.Broadcast(meeting.AssignedTo, "meeting_scheduled", meeting)
		}
	}()
}

func (f *FanOut) publish(payload queue.BookingEventPayload) {
	if f.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.Producer.PublishBookingEvent(ctx, payload); err != nil {
		log.Printf("⚠️ booking event publish failed: %v", err)
		metrics.IntegrationErrors.WithLabelValues("queue").Inc()
	}
}
