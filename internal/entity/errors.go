package entity

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrAgentNotFound      = errors.New("agent not found")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrPropertyNotFound   = errors.New("property not found")
)
