package templates

import "strings"

// Preview is the rendered view of a template with the current variable
// values applied.
type Preview struct {
	Name             string          `json:"name"`
	Header           *HeaderPreview  `json:"header,omitempty"`
	Body             string          `json:"body,omitempty"`
	Footer           string          `json:"footer,omitempty"`
	Buttons          []ButtonPreview `json:"buttons,omitempty"`
	MissingVariables []string        `json:"missing_variables"`
}

type HeaderPreview struct {
	Format   string `json:"format"`
	Text     string `json:"text,omitempty"`
	MediaURL string `json:"media_url,omitempty"`
}

type ButtonPreview struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// RenderPreview builds the preview for tmpl. Body text gets the variable
// substitution; the footer is shown as written.
func RenderPreview(tmpl *Template, variables []Variable) Preview {
	preview := Preview{
		Name:             tmpl.Name,
		MissingVariables: MissingVariables(variables),
	}

	if header := tmpl.Find(TypeHeader); header != nil {
		hp := &HeaderPreview{Format: header.Format}
		switch header.Format {
		case FormatText:
			hp.Text = FormatPreview(header.Text, variables)
		case FormatImage, FormatDocument, FormatVideo:
			hp.MediaURL = header.Example.firstHeaderHandle()
		}
		preview.Header = hp
	}

	if body := tmpl.Find(TypeBody); body != nil && body.Text != "" {
		preview.Body = FormatPreview(body.Text, variables)
	}

	if footer := tmpl.Find(TypeFooter); footer != nil {
		preview.Footer = footer.Text
	}

	if buttons := tmpl.Find(TypeButtons); buttons != nil {
		for _, b := range buttons.Buttons {
			preview.Buttons = append(preview.Buttons, ButtonPreview{Type: b.Type, Text: b.Text})
		}
	}

	return preview
}

// MissingVariables returns the names of variables with a blank value.
func MissingVariables(variables []Variable) []string {
	missing := []string{}
	for _, v := range variables {
		if strings.TrimSpace(v.Value) == "" {
			missing = append(missing, v.Name)
		}
	}
	return missing
}

// MergeValues copies values by name into the extracted variables, keeping
// extraction order and placeholders.
func MergeValues(variables []Variable, values map[string]string) []Variable {
	merged := make([]Variable, len(variables))
	for i, v := range variables {
		if value, ok := values[v.Name]; ok {
			v.Value = value
		}
		merged[i] = v
	}
	return merged
}
