package worker

import (
	"context"
	"log"
	"time"

	"github.com/obaturn/Property-Managment-Backend/internal/entity"
)

// ReminderEmailSender is the slice of the mail package the worker needs.
type ReminderEmailSender interface {
	SendReminder(to, name, propertyAddress, meetingTime string) error
}

// MeetingReminderWorker emails upcoming-viewing reminders on a ticker. It is
// a notification side-channel only: it never transitions meeting status.
type MeetingReminderWorker struct {
	Meetings entity.MeetingRepositoryInterface
	Email    ReminderEmailSender

	window       time.Duration
	tickInterval time.Duration
}

func NewMeetingReminderWorker(
	meetings entity.MeetingRepositoryInterface,
	email ReminderEmailSender,
) *MeetingReminderWorker {
	return &MeetingReminderWorker{
		Meetings:     meetings,
		Email:        email,
		window:       24 * time.Hour,
		tickInterval: 15 * time.Minute,
	}
}

func (w *MeetingReminderWorker) Start(ctx context.Context) {
	log.Println("🕒 meeting reminder worker started (24h window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sendDueReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ meeting reminder worker stopped")
			return
		case <-ticker.C:
			w.sendDueReminders(ctx)
		}
	}
}

func (w *MeetingReminderWorker) sendDueReminders(ctx context.Context) {
	now := time.Now()
	meetings, err := w.Meetings.FindDueForReminder(ctx, now, now.Add(w.window))
	if err != nil {
		log.Printf("❌ reminder sweep query failed: %v", err)
		return
	}

	sent := 0
	for _, m := range meetings {
		// LeadEmail is snapshotted at creation. Rows that predate the
		// snapshot have nowhere to send to.
		if m.LeadEmail == "" {
			log.Printf("⚠️ meeting %s has no lead email snapshot, skipping reminder", m.ID)
			continue
		}

		meetingTime := m.DateTime.Format("Mon, 02 Jan 2006 15:04 MST")
		if err := w.Email.SendReminder(m.LeadEmail, m.LeadName, m.PropertyAddress, meetingTime); err != nil {
			log.Printf("⚠️ reminder to %s failed: %v", m.LeadEmail, err)
			continue
		}

		if err := w.Meetings.MarkReminded(ctx, m.ID, now); err != nil {
			log.Printf("⚠️ reminder mark failed for meeting %s: %v", m.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("✅ %d meeting reminder(s) sent", sent)
	}
}
