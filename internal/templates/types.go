package templates

import "encoding/json"

// Template status values reported by the provider.
const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
)

// Component types.
const (
	TypeHeader   = "HEADER"
	TypeBody     = "BODY"
	TypeFooter   = "FOOTER"
	TypeButtons  = "BUTTONS"
	TypeCarousel = "CAROUSEL"
)

// Header formats.
const (
	FormatText     = "TEXT"
	FormatImage    = "IMAGE"
	FormatDocument = "DOCUMENT"
	FormatLocation = "LOCATION"
	FormatVideo    = "VIDEO"
)

// Button types.
const (
	ButtonURL         = "URL"
	ButtonPhoneNumber = "PHONE_NUMBER"
	ButtonQuickReply  = "QUICK_REPLY"
)

// Template represents a WhatsApp Message Template
type Template struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Language   string      `json:"language"`
	Category   string      `json:"category"`
	Status     string      `json:"status"` // APPROVED, REJECTED, PENDING
	Components []Component `json:"components"`
}

type Component struct {
	Type             string          `json:"type"`
	Format           string          `json:"format,omitempty"`
	Text             string          `json:"text,omitempty"`
	Example          *Example        `json:"example,omitempty"`
	Buttons          []Button        `json:"buttons,omitempty"`
	LimitedTimeOffer json.RawMessage `json:"limited_time_offer,omitempty"`
	Cards            []Card          `json:"cards,omitempty"`
}

type Example struct {
	HeaderHandle []string   `json:"header_handle,omitempty"`
	HeaderText   []string   `json:"header_text,omitempty"`
	BodyText     [][]string `json:"body_text,omitempty"`
}

type Button struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	URL         string   `json:"url,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Example     []string `json:"example,omitempty"`
}

type Card struct {
	Components []Component `json:"components"`
}

// Variable is a numbered placeholder slot filled in before sending.
type Variable struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder"`
}

// Find returns the first component of the given type, or nil.
func (t *Template) Find(componentType string) *Component {
	for i := range t.Components {
		if t.Components[i].Type == componentType {
			return &t.Components[i]
		}
	}
	return nil
}

// IsApproved reports whether the template may be used for sending.
func (t *Template) IsApproved() bool {
	return t.Status == StatusApproved
}

func (e *Example) firstHeaderHandle() string {
	if e == nil || len(e.HeaderHandle) == 0 {
		return ""
	}
	return e.HeaderHandle[0]
}

func (e *Example) bodyValues() []string {
	if e == nil || len(e.BodyText) == 0 {
		return nil
	}
	return e.BodyText[0]
}
