package templates

import (
	"testing"
	"whatsapp-campaign/internal/whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHeaderTemplate() *Template {
	return &Template{
		Name:     "youss_textheader",
		Language: "en",
		Status:   StatusApproved,
		Components: []Component{
			{Type: TypeHeader, Format: FormatText, Text: "Hello {{1}}", Example: &Example{HeaderText: []string{"alok"}}},
			{Type: TypeBody, Text: "Hi {{1}}, your code is {{2}}", Example: &Example{BodyText: [][]string{{"Alok", "X7K2"}}}},
			{Type: TypeFooter, Text: "footer"},
			{Type: TypeButtons, Buttons: []Button{{Type: ButtonURL, Text: "Visit", URL: "https://example.com"}}},
		},
	}
}

func TestFormatRequestMissingTemplate(t *testing.T) {
	_, err := FormatRequest(nil, Variables{})
	assert.ErrorIs(t, err, ErrMissingTemplate)

	_, err = BuildContent(nil, nil)
	assert.ErrorIs(t, err, ErrMissingTemplate)
}

func TestFormatRequestTextHeaderAndBody(t *testing.T) {
	components, err := FormatRequest(textHeaderTemplate(), nil)
	require.NoError(t, err)

	require.Len(t, components, 2)
	assert.Equal(t, whatsapp.ComponentHeader, components[0].Type)
	assert.Len(t, components[0].Parameters, 1)
	assert.Equal(t, whatsapp.ComponentBody, components[1].Type)
	assert.Len(t, components[1].Parameters, 2)

	assert.Equal(t, "alok", components[0].Parameters[0].Text)
	assert.Equal(t, []whatsapp.Parameter{
		{Type: whatsapp.ParamText, Text: "Alok"},
		{Type: whatsapp.ParamText, Text: "X7K2"},
	}, components[1].Parameters)
}

func TestFormatRequestPositionalOverride(t *testing.T) {
	src := Variables{"1": "Sara", "2": "", "header_text1": "Sara A.", "unrelated": "x"}

	components, err := FormatRequest(textHeaderTemplate(), src)
	require.NoError(t, err)

	assert.Equal(t, "Sara A.", components[0].Parameters[0].Text)
	assert.Equal(t, "Sara", components[1].Parameters[0].Text)
	// An empty value falls back to the example.
	assert.Equal(t, "X7K2", components[1].Parameters[1].Text)
}

func TestFormatRequestBodyWithoutExampleIsSkipped(t *testing.T) {
	tmpl := &Template{Name: "t", Components: []Component{{Type: TypeBody, Text: "Hi {{1}}"}}}

	components, err := FormatRequest(tmpl, Variables{"1": "Alok"})

	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestFormatRequestTextHeaderWithoutExampleUsesData(t *testing.T) {
	tmpl := &Template{Name: "t", Components: []Component{{Type: TypeHeader, Format: FormatText, Text: "Hello {{1}}"}}}

	none, err := FormatRequest(tmpl, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	withData, err := FormatRequest(tmpl, Variables{"header_text1": "Alok"})
	require.NoError(t, err)
	require.Len(t, withData, 1)
	assert.Equal(t, "Alok", withData[0].Parameters[0].Text)
}

func TestFormatRequestImageHeader(t *testing.T) {
	tmpl := &Template{Name: "sandbox_image_message", Components: []Component{{
		Type:    TypeHeader,
		Format:  FormatImage,
		Example: &Example{HeaderHandle: []string{"https://example.com/example.jpg"}},
	}}}

	fromExample, err := FormatRequest(tmpl, nil)
	require.NoError(t, err)
	require.Len(t, fromExample, 1)
	assert.Equal(t, whatsapp.Parameter{Type: whatsapp.ParamImage, URL: "https://example.com/example.jpg"}, fromExample[0].Parameters[0])

	overridden, err := FormatRequest(tmpl, Variables{"header_image": "https://example.com/news.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/news.png", overridden[0].Parameters[0].URL)

	// Not an absolute http(s) URL, so the example stays.
	invalid, err := FormatRequest(tmpl, Variables{"header_image": "javascript:alert(1)"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/example.jpg", invalid[0].Parameters[0].URL)

	tmpl.Components[0].Example = nil
	none, err := FormatRequest(tmpl, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFormatRequestDocumentHeader(t *testing.T) {
	tmpl := &Template{Name: "statement", Components: []Component{{
		Type:    TypeHeader,
		Format:  FormatDocument,
		Example: &Example{HeaderHandle: []string{"https://example.com/example.pdf"}},
	}}}

	components, err := FormatRequest(tmpl, Variables{
		"header_document": "https://example.com/march.pdf",
		"document_name":   "march.pdf",
	})
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, whatsapp.Parameter{
		Type:     whatsapp.ParamFile,
		URL:      "https://example.com/march.pdf",
		FileName: "march.pdf",
	}, components[0].Parameters[0])

	fallback, err := FormatRequest(tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/example.pdf", fallback[0].Parameters[0].URL)
}

func TestFormatRequestLocationHeader(t *testing.T) {
	tmpl := &Template{Name: "store_location", Components: []Component{{Type: TypeHeader, Format: FormatLocation}}}

	complete := Variables{
		"latitude":         "24.7136",
		"longitude":        "46.6753",
		"location_name":    "Riyadh Store",
		"location_address": "King Fahd Rd",
	}
	components, err := FormatRequest(tmpl, complete)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, &whatsapp.LocationValue{
		Latitude:  "24.7136",
		Longitude: "46.6753",
		Name:      "Riyadh Store",
		Address:   "King Fahd Rd",
	}, components[0].Parameters[0].Location)

	delete(complete, "longitude")
	missing, err := FormatRequest(tmpl, complete)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestFormatRequestUnknownHeaderFormat(t *testing.T) {
	tmpl := &Template{Name: "t", Components: []Component{{
		Type:    TypeHeader,
		Format:  FormatVideo,
		Example: &Example{HeaderHandle: []string{"https://example.com/v.mp4"}},
	}}}

	components, err := FormatRequest(tmpl, nil)

	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestFormatRequestCarousel(t *testing.T) {
	card := func(image, reply string) Card {
		return Card{Components: []Component{
			{Type: TypeHeader, Format: FormatImage, Example: &Example{HeaderHandle: []string{image}}},
			{Type: TypeButtons, Buttons: []Button{{Type: ButtonQuickReply, Text: reply}, {Type: ButtonURL, Text: "web"}}},
		}}
	}
	tmpl := &Template{Name: "almiswak_test_carousel", Language: "ar", Components: []Component{
		{Type: TypeBody, Text: "static body"},
		{Type: TypeCarousel, Cards: []Card{
			card("https://example.com/1.jpg", "button1 card1"),
			card("https://example.com/2.jpg", "Premium Card"),
			{Components: []Component{{Type: TypeBody, Text: "nothing to send"}}},
		}},
	}}

	components, err := FormatRequest(tmpl, Variables{"card_image2": "https://example.com/override.jpg"})
	require.NoError(t, err)
	require.Len(t, components, 1)

	carousel := components[0]
	assert.Equal(t, whatsapp.ComponentCarousel, carousel.Type)
	require.Len(t, carousel.Cards, 2)
	assert.Equal(t, 0, carousel.Cards[0].CardIndex)
	assert.Equal(t, "https://example.com/1.jpg", carousel.Cards[0].Components[0].Parameters[0].URL)
	assert.Equal(t, "https://example.com/override.jpg", carousel.Cards[1].Components[0].Parameters[0].URL)
	assert.Equal(t, []whatsapp.Option{{Value: "Premium Card", SubType: whatsapp.SubTypeQuickReply, Index: 0}}, carousel.Cards[1].Components[1].Options)
}

func TestBuildContent(t *testing.T) {
	tmpl := textHeaderTemplate()

	content, err := BuildContent(tmpl, Variables{"1": "Alok"})
	require.NoError(t, err)

	assert.Equal(t, whatsapp.ContentTemplate, content.Type)
	assert.Equal(t, "youss_textheader", content.Name)
	assert.Equal(t, "en", content.Language.Code)
	assert.Len(t, content.Components, 2)

	tmpl.Language = ""
	content, err = BuildContent(tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, "en", content.Language.Code)
}

func TestFormatRequestMemberEvent(t *testing.T) {
	evt := MemberEvent{
		HeaderText: []string{"Gold member"},
		BodyText:   []string{"", "K9"},
	}

	components, err := FormatRequest(textHeaderTemplate(), evt)
	require.NoError(t, err)

	assert.Equal(t, "Gold member", components[0].Parameters[0].Text)
	assert.Equal(t, "Alok", components[1].Parameters[0].Text)
	assert.Equal(t, "K9", components[1].Parameters[1].Text)
}

func TestFormatRequestHeaderSharesBodySlot(t *testing.T) {
	tmpl := textHeaderTemplate()
	values := map[string]string{"1": "Bob", "2": "Z9"}

	components, err := FormatRequest(tmpl, Variables(values))
	require.NoError(t, err)

	require.Len(t, components, 2)
	assert.Equal(t, "Bob", components[0].Parameters[0].Text)
	assert.Equal(t, "Bob", components[1].Parameters[0].Text)
	assert.Equal(t, "Z9", components[1].Parameters[1].Text)

	preview := RenderPreview(tmpl, MergeValues(ExtractVariables(tmpl.Components), values))
	assert.Equal(t, "Hello "+components[0].Parameters[0].Text, preview.Header.Text)
}

func TestFormatRequestHeaderSlotWithoutExample(t *testing.T) {
	tmpl := &Template{Name: "t", Components: []Component{{Type: TypeHeader, Format: FormatText, Text: "Order {{2}}"}}}

	components, err := FormatRequest(tmpl, Variables{"2": "A-17"})
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, []whatsapp.Parameter{{Type: whatsapp.ParamText, Text: "A-17"}}, components[0].Parameters)

	blank, err := FormatRequest(tmpl, Variables{"2": " "})
	require.NoError(t, err)
	assert.Empty(t, blank)
}
