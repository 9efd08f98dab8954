package gcal

import "time"

type freeBusyRequest struct {
	TimeMin string           `json:"timeMin"`
	TimeMax string           `json:"timeMax"`
	Items   []freeBusyItemID `json:"items"`
}

type freeBusyItemID struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []busyWindow `json:"busy"`
	} `json:"calendars"`
}

type busyWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime"`
}

type eventAttendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type eventResource struct {
	ID          string          `json:"id,omitempty"`
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       eventDateTime   `json:"start"`
	End         eventDateTime   `json:"end"`
	Attendees   []eventAttendee `json:"attendees,omitempty"`
	HTMLLink    string          `json:"htmlLink,omitempty"`
}

type eventListResponse struct {
	Items []eventResource `json:"items"`
}
