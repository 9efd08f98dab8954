package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateBookViewingInput(input BookViewingInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.PropertyID) == "" {
		errs = append(errs, ValidationError{"property_id", "is required"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	return errs
}

// ValidateIngestLeadInput is the webhook entry check: name and email only.
func ValidateIngestLeadInput(input IngestLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	return errs
}

func ValidateScheduleMeetingInput(input ScheduleMeetingInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadName) == "" {
		errs = append(errs, ValidationError{"lead_name", "is required"})
	}
	if strings.TrimSpace(input.LeadEmail) == "" {
		errs = append(errs, ValidationError{"lead_email", "is required"})
	} else if _, err := mail.ParseAddress(input.LeadEmail); err != nil {
		errs = append(errs, ValidationError{"lead_email", "is invalid"})
	}
	if strings.TrimSpace(input.PropertyAddress) == "" {
		errs = append(errs, ValidationError{"property_address", "is required"})
	}
	if strings.TrimSpace(input.AssignedTo) == "" {
		errs = append(errs, ValidationError{"assigned_to", "is required"})
	}
	if strings.TrimSpace(input.DateTime) == "" {
		errs = append(errs, ValidationError{"date_time", "is required"})
	}

	return errs
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
