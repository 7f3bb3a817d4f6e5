package templates

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\d+)\}\}`)

// ExtractVariables scans every component with text for {{N}} placeholders
// and returns one empty variable per distinct index, in order of first
// appearance. The placeholder comes from the component's body_text example
// when one exists for that index.
func ExtractVariables(components []Component) []Variable {
	variables := []Variable{}
	seen := map[string]bool{}

	for _, component := range components {
		if component.Text == "" {
			continue
		}

		for _, match := range placeholderPattern.FindAllStringSubmatch(component.Text, -1) {
			name := match[1]
			if seen[name] {
				continue
			}
			seen[name] = true

			placeholder := exampleFor(component.Example, name)
			if placeholder == "" {
				placeholder = "Variable " + name
			}

			variables = append(variables, Variable{
				Name:        name,
				Value:       "",
				Placeholder: placeholder,
			})
		}
	}

	return variables
}

// placeholderNames returns the distinct {{N}} names in text, in order.
func placeholderNames(text string) []string {
	var names []string
	seen := map[string]bool{}
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

func exampleFor(example *Example, name string) string {
	values := example.bodyValues()
	index, err := strconv.Atoi(name)
	if err != nil || index < 1 || index > len(values) {
		return ""
	}
	return values[index-1]
}

// FormatPreview replaces every {{name}} in text with the variable value, or
// with the bracketed placeholder when the value is empty.
func FormatPreview(text string, variables []Variable) string {
	formatted := text
	for _, v := range variables {
		replacement := v.Value
		if replacement == "" {
			replacement = "[" + v.Placeholder + "]"
		}
		formatted = strings.ReplaceAll(formatted, "{{"+v.Name+"}}", replacement)
	}
	return formatted
}
