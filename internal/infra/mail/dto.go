package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type bookingEmailData struct {
	Name            string
	AgentName       string
	AgentPhone      string
	PropertyAddress string
	MeetingTime     string
	CalendarLink    string
}
