package usecase

import "errors"

// Domain error codes surfaced to callers. Handlers map these to HTTP status.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
)

// DomainError is an expected business failure: bad input, missing record,
// duplicate lead, scheduling overlap. No writes survive one.
type DomainError struct {
	Code    string
	Message string

	// Details carries caller-facing context, e.g. the existing lead on a
	// duplicate, or the conflicting meetings on a scheduling overlap.
	Details interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// TechnicalError is an unexpected infrastructure failure; the atomic unit it
// occurred in has been aborted.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}
