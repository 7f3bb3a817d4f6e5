package campaign

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	MsgNoTemplate        = "No template selected"
	MsgNoRecipients      = "No recipients entered"
	MsgInvalidRecipients = "Invalid phone numbers entered"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// ValidationError rejects a campaign before any provider call is made.
type ValidationError struct {
	Message string
	Invalid []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Recipients accepts either a comma separated string or a JSON array.
type Recipients []string

func (r *Recipients) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = ParseRecipients(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	cleaned := Recipients{}
	for _, item := range list {
		cleaned = append(cleaned, ParseRecipients(item)...)
	}
	*r = cleaned
	return nil
}

// ParseRecipients splits a comma separated list, trimming entries and
// dropping empty ones.
func ParseRecipients(raw string) []string {
	recipients := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

// ValidPhone reports whether number is an optional + followed by 10 to 15
// digits.
func ValidPhone(number string) bool {
	return phonePattern.MatchString(number)
}

// ValidateRecipients checks that there is at least one recipient and that
// every recipient is a valid phone number.
func ValidateRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return &ValidationError{Message: MsgNoRecipients}
	}

	var invalid []string
	for _, r := range recipients {
		if !ValidPhone(r) {
			invalid = append(invalid, r)
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Message: MsgInvalidRecipients, Invalid: invalid}
	}
	return nil
}
