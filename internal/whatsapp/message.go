package whatsapp

import "encoding/json"

// --- Message Structures ---

const (
	ChannelWhatsApp = "whatsapp"
	ContentTemplate = "template"
)

// Message is the body of POST /v1/messages.
type Message struct {
	Recipient Recipient `json:"recipient"`
	Content   Content   `json:"content"`
}

type Recipient struct {
	Contact string `json:"contact"`
	Channel string `json:"channel"`
}

type Content struct {
	Type       string      `json:"type"`
	Name       string      `json:"name"`
	Language   Language    `json:"language"`
	Components []Component `json:"components"`
}

type Language struct {
	Code string `json:"code"`
}

// Component is one header/body/carousel entry of a template send.
type Component struct {
	Type       string      `json:"type"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Cards      []Card      `json:"cards,omitempty"` // For carousel
}

type Parameter struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	URL      string         `json:"url,omitempty"`
	FileName string         `json:"fileName,omitempty"` // For file headers
	Location *LocationValue `json:"location,omitempty"`
}

type LocationValue struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Name      string `json:"name"`
	Address   string `json:"address"`
}

type Card struct {
	CardIndex  int             `json:"cardIndex"`
	Components []CardComponent `json:"components"`
}

// CardComponent is either a header (Parameters) or an options block
// (Options) inside a carousel card.
type CardComponent struct {
	Type       string      `json:"type"`
	Parameters []Parameter `json:"-"`
	Options    []Option    `json:"-"`
}

func (c CardComponent) MarshalJSON() ([]byte, error) {
	out := struct {
		Type       string      `json:"type"`
		Parameters interface{} `json:"parameters"`
	}{Type: c.Type}
	if c.Type == ComponentOptions {
		out.Parameters = c.Options
	} else {
		out.Parameters = c.Parameters
	}
	return json.Marshal(out)
}

type Option struct {
	Value   string `json:"value"`
	SubType string `json:"subType"`
	Index   int    `json:"index"`
}

const (
	ParamText     = "text"
	ParamImage    = "image"
	ParamFile     = "file"
	ParamLocation = "location"

	ComponentHeader   = "header"
	ComponentBody     = "body"
	ComponentCarousel = "carousel"
	ComponentOptions  = "options"

	SubTypeQuickReply = "quickReply"
)
