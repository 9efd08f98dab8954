package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "no-reply@bookings.local"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var bookingConfirmationTmpl = template.Must(template.New("booking").Parse(`Hi {{.Name}},

Your viewing of {{.PropertyAddress}} is confirmed for {{.MeetingTime}}.
Your agent is {{.AgentName}}{{if .AgentPhone}} ({{.AgentPhone}}){{end}}.
{{if .CalendarLink}}
Add it to your calendar: {{.CalendarLink}}
{{end}}
See you there!
`))

// SendBookingConfirmation emails the lead after a viewing is booked.
func (s *EmailSender) SendBookingConfirmation(to, name, agentName, agentPhone, propertyAddress, meetingTime, calendarLink string) error {
	data := bookingEmailData{
		Name:            name,
		AgentName:       agentName,
		AgentPhone:      agentPhone,
		PropertyAddress: propertyAddress,
		MeetingTime:     meetingTime,
		CalendarLink:    calendarLink,
	}

	var body bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	subject := fmt.Sprintf("Viewing confirmed: %s", propertyAddress)
	return s.send(to, subject, body.String())
}

// SendAgentAssignment notifies the agent that a viewing landed on their calendar.
func (s *EmailSender) SendAgentAssignment(to, agentName, leadName, propertyAddress, meetingTime string) error {
	body := fmt.Sprintf("Hi %s,\n\nA viewing of %s with %s was booked for %s.\n",
		agentName, propertyAddress, leadName, meetingTime)
	return s.send(to, fmt.Sprintf("New viewing booked: %s", propertyAddress), body)
}

// SendReminder nudges a lead about an upcoming viewing.
func (s *EmailSender) SendReminder(to, name, propertyAddress, meetingTime string) error {
	body := fmt.Sprintf("Hi %s,\n\nA reminder: your viewing of %s is coming up at %s.\n",
		name, propertyAddress, meetingTime)
	return s.send(to, fmt.Sprintf("Reminder: viewing of %s", propertyAddress), body)
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
