package templates

import (
	"strings"
	"whatsapp-campaign/internal/whatsapp"

	"github.com/pkg/errors"
)

// ErrMissingTemplate is returned when no template was supplied or found.
var ErrMissingTemplate = errors.New("template not found")

const defaultLanguage = "en"

// FormatRequest maps tmpl and the data from src onto the components array of
// a provider send. A header or body is left out entirely when neither the
// data nor the template example can back it, since the provider rejects
// sends with unfilled placeholders. FOOTER and BUTTONS never produce
// components.
func FormatRequest(tmpl *Template, src DataSource) ([]whatsapp.Component, error) {
	if tmpl == nil {
		return nil, ErrMissingTemplate
	}

	var data Data
	if src != nil {
		data = src.TemplateData()
	}

	components := []whatsapp.Component{}
	for i := range tmpl.Components {
		component := &tmpl.Components[i]

		var formatted *whatsapp.Component
		switch component.Type {
		case TypeHeader:
			formatted = formatHeader(component, data)
		case TypeBody:
			formatted = formatBody(component, data)
		case TypeCarousel:
			formatted = formatCarousel(component, data)
		}

		if formatted != nil {
			components = append(components, *formatted)
		}
	}

	return components, nil
}

// BuildContent wraps the formatted components into the template content of
// a provider message.
func BuildContent(tmpl *Template, src DataSource) (whatsapp.Content, error) {
	components, err := FormatRequest(tmpl, src)
	if err != nil {
		return whatsapp.Content{}, err
	}

	language := tmpl.Language
	if language == "" {
		language = defaultLanguage
	}

	return whatsapp.Content{
		Type:       whatsapp.ContentTemplate,
		Name:       tmpl.Name,
		Language:   whatsapp.Language{Code: language},
		Components: components,
	}, nil
}

func formatHeader(component *Component, data Data) *whatsapp.Component {
	var params []whatsapp.Parameter

	switch component.Format {
	case FormatImage:
		imageURL := firstNonEmpty(data.HeaderImageURL, component.Example.firstHeaderHandle())
		if imageURL == "" {
			return nil
		}
		params = append(params, whatsapp.Parameter{Type: whatsapp.ParamImage, URL: imageURL})

	case FormatText:
		var examples []string
		if component.Example != nil {
			examples = component.Example.HeaderText
		}
		names := placeholderNames(component.Text)
		n := len(examples)
		if n == 0 {
			n = max(len(data.HeaderText), len(names))
		}
		for i := 0; i < n; i++ {
			text := firstNonEmpty(at(data.HeaderText, i), data.slot(names, i), at(examples, i))
			if text == "" {
				continue
			}
			params = append(params, whatsapp.Parameter{Type: whatsapp.ParamText, Text: text})
		}

	case FormatDocument:
		var doc Document
		if data.HeaderDocument != nil {
			doc = *data.HeaderDocument
		}
		doc.URL = firstNonEmpty(doc.URL, component.Example.firstHeaderHandle())
		if doc.URL == "" {
			return nil
		}
		params = append(params, whatsapp.Parameter{
			Type:     whatsapp.ParamFile,
			URL:      doc.URL,
			FileName: doc.Filename,
		})

	case FormatLocation:
		if !data.Location.Complete() {
			return nil
		}
		params = append(params, whatsapp.Parameter{
			Type: whatsapp.ParamLocation,
			Location: &whatsapp.LocationValue{
				Latitude:  string(data.Location.Latitude),
				Longitude: string(data.Location.Longitude),
				Name:      data.Location.Name,
				Address:   data.Location.Address,
			},
		})
	}

	if len(params) == 0 {
		return nil
	}
	return &whatsapp.Component{Type: whatsapp.ComponentHeader, Parameters: params}
}

func formatBody(component *Component, data Data) *whatsapp.Component {
	examples := component.Example.bodyValues()
	if len(examples) == 0 {
		return nil
	}

	params := make([]whatsapp.Parameter, 0, len(examples))
	for i, example := range examples {
		params = append(params, whatsapp.Parameter{
			Type: whatsapp.ParamText,
			Text: firstNonEmpty(at(data.BodyText, i), example),
		})
	}
	return &whatsapp.Component{Type: whatsapp.ComponentBody, Parameters: params}
}

func formatCarousel(component *Component, data Data) *whatsapp.Component {
	var cards []whatsapp.Card

	for i, card := range component.Cards {
		var parts []whatsapp.CardComponent

		for j := range card.Components {
			cc := &card.Components[j]
			switch cc.Type {
			case TypeHeader:
				if cc.Format != FormatImage {
					continue
				}
				imageURL := firstNonEmpty(at(data.CardImageURLs, i), cc.Example.firstHeaderHandle())
				if imageURL == "" {
					continue
				}
				parts = append(parts, whatsapp.CardComponent{
					Type:       whatsapp.ComponentHeader,
					Parameters: []whatsapp.Parameter{{Type: whatsapp.ParamImage, URL: imageURL}},
				})
			case TypeButtons:
				var options []whatsapp.Option
				for _, b := range cc.Buttons {
					if b.Type != ButtonQuickReply || b.Text == "" {
						continue
					}
					options = append(options, whatsapp.Option{
						Value:   b.Text,
						SubType: whatsapp.SubTypeQuickReply,
						Index:   len(options),
					})
				}
				if len(options) > 0 {
					parts = append(parts, whatsapp.CardComponent{
						Type:    whatsapp.ComponentOptions,
						Options: options,
					})
				}
			}
		}

		if len(parts) == 0 {
			continue
		}
		cards = append(cards, whatsapp.Card{CardIndex: i, Components: parts})
	}

	if len(cards) == 0 {
		return nil
	}
	return &whatsapp.Component{Type: whatsapp.ComponentCarousel, Cards: cards}
}

func at(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
