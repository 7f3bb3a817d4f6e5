package templates

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// FilterAll matches every category or language.
const FilterAll = "ALL"

// FileStore reads template definitions from a static JSON file. The file is
// read again on every call.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// All returns every template in the file regardless of status.
func (s *FileStore) All() ([]Template, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read templates file %s", s.Path)
	}

	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, errors.Wrapf(err, "decode templates file %s", s.Path)
	}
	return templates, nil
}

// Approved returns the templates whose status is exactly APPROVED.
func (s *FileStore) Approved() ([]Template, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	return ApprovedOnly(all), nil
}

// FindByID returns the approved template with the given id.
func (s *FileStore) FindByID(id string) (*Template, error) {
	return s.find(func(t *Template) bool { return t.ID == id })
}

// FindByName returns the approved template with the given name. When
// language is set it must match too.
func (s *FileStore) FindByName(name, language string) (*Template, error) {
	return s.find(func(t *Template) bool {
		return t.Name == name && (language == "" || t.Language == language)
	})
}

func (s *FileStore) find(match func(*Template) bool) (*Template, error) {
	approved, err := s.Approved()
	if err != nil {
		return nil, err
	}
	for i := range approved {
		if match(&approved[i]) {
			return &approved[i], nil
		}
	}
	return nil, ErrMissingTemplate
}

func ApprovedOnly(templates []Template) []Template {
	approved := []Template{}
	for _, t := range templates {
		if t.IsApproved() {
			approved = append(approved, t)
		}
	}
	return approved
}

// Filter keeps templates matching category and language. Empty or ALL
// disables that filter.
func Filter(templates []Template, category, language string) []Template {
	filtered := []Template{}
	for _, t := range templates {
		if !matches(category, t.Category) || !matches(language, t.Language) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func matches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// Facets lists the distinct categories and languages, each led by ALL, in
// order of first appearance.
type Facets struct {
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}

func BuildFacets(templates []Template) Facets {
	facets := Facets{
		Categories: []string{FilterAll},
		Languages:  []string{FilterAll},
	}
	seenCategory := map[string]bool{}
	seenLanguage := map[string]bool{}

	for _, t := range templates {
		if !seenCategory[t.Category] {
			seenCategory[t.Category] = true
			facets.Categories = append(facets.Categories, t.Category)
		}
		if !seenLanguage[t.Language] {
			seenLanguage[t.Language] = true
			facets.Languages = append(facets.Languages, t.Language)
		}
	}
	return facets
}
