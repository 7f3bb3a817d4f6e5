package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Data is the validated input of the request formatter. Every field is
// optional; an empty field falls back to the template example.
type Data struct {
	HeaderText     []string
	HeaderImageURL string
	HeaderDocument *Document
	Location       *Location
	BodyText       []string
	CardImageURLs  []string

	// Slots holds values by placeholder name. A name used in both the header
	// and the body shares one value, matching ExtractVariables.
	Slots map[string]string
}

// slot returns the value for the i-th header placeholder.
func (d Data) slot(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return strings.TrimSpace(d.Slots[names[i]])
}

type Document struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

type Location struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
}

// Complete reports whether all four fields a location header needs are set.
func (l *Location) Complete() bool {
	return l != nil &&
		l.Latitude != "" &&
		l.Longitude != "" &&
		strings.TrimSpace(l.Name) != "" &&
		strings.TrimSpace(l.Address) != ""
}

// Coordinate accepts a JSON number or string and keeps its text form.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coordinate(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Coordinate(n.String())
	return nil
}

// DataSource produces the formatter input from some request shape.
type DataSource interface {
	TemplateData() Data
}

// Variables holds campaign-form values keyed by placeholder index ("1",
// "2", ...). A few named keys fill header media and location:
// header_textN, header_image, header_document, document_name, latitude,
// longitude, location_name, location_address and card_imageN. Other keys
// are ignored.
type Variables map[string]string

func (v Variables) TemplateData() Data {
	data := Data{
		HeaderText:     indexed(v, "header_text"),
		HeaderImageURL: mediaURL(v["header_image"]),
		BodyText:       indexed(v, ""),
		CardImageURLs:  indexed(v, "card_image"),
		Slots:          map[string]string{},
	}
	for k, value := range v {
		if m := indexedKey.FindStringSubmatch(k); m != nil && m[1] == "" {
			data.Slots[m[2]] = value
		}
	}

	if doc := mediaURL(v["header_document"]); doc != "" {
		data.HeaderDocument = &Document{URL: doc, Filename: v["document_name"]}
	}

	loc := &Location{
		Latitude:  Coordinate(strings.TrimSpace(v["latitude"])),
		Longitude: Coordinate(strings.TrimSpace(v["longitude"])),
		Name:      v["location_name"],
		Address:   v["location_address"],
	}
	if loc.Latitude != "" || loc.Longitude != "" || loc.Name != "" || loc.Address != "" {
		data.Location = loc
	}

	return data
}

// Membership is the member block of a loyalty event.
type Membership struct {
	PhoneNumber string `json:"PhoneNumber"`
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	Email       string `json:"Email"`
	MemberID    string `json:"MemberId"`
	Tier        string `json:"Tier"`
}

// MemberEvent is the loyalty-program event payload that drives a template
// send. Only the fields below and the header_textN / body_textN / card_imageN
// keys are read.
type MemberEvent struct {
	TemplateName   string     `json:"templateName"`
	Language       string     `json:"language"`
	HeaderImage    string     `json:"header_image"`
	HeaderDocument string     `json:"header_document"`
	DocumentName   string     `json:"document_name"`
	Location       *Location  `json:"location"`
	Membership     Membership `json:"Membership"`

	HeaderText    []string `json:"-"`
	BodyText      []string `json:"-"`
	CardImageURLs []string `json:"-"`
}

func (e *MemberEvent) UnmarshalJSON(b []byte) error {
	type named MemberEvent
	var ev named
	if err := json.Unmarshal(b, &ev); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	strs := map[string]string{}
	for k, v := range raw {
		m := indexedKey.FindStringSubmatch(k)
		if m == nil || !eventPrefixes[m[1]] {
			continue
		}
		value, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		strs[k] = value
	}

	*e = MemberEvent(ev)
	e.HeaderText = indexed(strs, "header_text")
	e.BodyText = indexed(strs, "body_text")
	e.CardImageURLs = indexed(strs, "card_image")
	return nil
}

func (e MemberEvent) TemplateData() Data {
	data := Data{
		HeaderText:     e.HeaderText,
		HeaderImageURL: mediaURL(e.HeaderImage),
		BodyText:       e.BodyText,
		CardImageURLs:  e.CardImageURLs,
		Location:       e.Location,
	}
	if doc := mediaURL(e.HeaderDocument); doc != "" {
		data.HeaderDocument = &Document{URL: doc, Filename: e.DocumentName}
	}
	return data
}

// MemberEvent keys read positionally.
var eventPrefixes = map[string]bool{"header_text": true, "body_text": true, "card_image": true}

// scalarString accepts a JSON string or number. null reads as empty.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected a string or number, got %s", raw)
	}
	return n.String(), nil
}

var indexedKey = regexp.MustCompile(`^([a-z_]*)(\d+)$`)

// indexed collects values of keys prefix1..prefixN into a positional slice.
// Gaps are left empty so the formatter falls back to examples there.
func indexed(values map[string]string, prefix string) []string {
	byIndex := map[int]string{}
	for k, v := range values {
		m := indexedKey.FindStringSubmatch(k)
		if m == nil || m[1] != prefix {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > 100 {
			continue
		}
		byIndex[n] = v
	}
	if len(byIndex) == 0 {
		return nil
	}

	keys := make([]int, 0, len(byIndex))
	for n := range byIndex {
		keys = append(keys, n)
	}
	sort.Ints(keys)

	out := make([]string, keys[len(keys)-1])
	for _, n := range keys {
		out[n-1] = byIndex[n]
	}
	return out
}

// mediaURL keeps only absolute http(s) URLs.
func mediaURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return raw
}
