package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeFixture = `[
	{"id": "1", "name": "welcome", "language": "en", "category": "MARKETING", "status": "APPROVED", "components": []},
	{"id": "2", "name": "welcome", "language": "ar", "category": "MARKETING", "status": "APPROVED", "components": []},
	{"id": "3", "name": "receipt", "language": "en", "category": "UTILITY", "status": "approved", "components": []},
	{"id": "4", "name": "draft", "language": "en", "category": "UTILITY", "status": "PENDING", "components": []},
	{"id": "5", "name": "otp", "language": "en", "category": "AUTHENTICATION", "status": "APPROVED", "components": []}
]`

func writeStore(t *testing.T, content string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewFileStore(path)
}

func ids(templates []Template) []string {
	out := []string{}
	for _, t := range templates {
		out = append(out, t.ID)
	}
	return out
}

func TestApprovedFiltersExactStatus(t *testing.T) {
	store := writeStore(t, storeFixture)

	approved, err := store.Approved()

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "5"}, ids(approved))
}

func TestStoreReadsFileOnEveryCall(t *testing.T) {
	store := writeStore(t, storeFixture)
	first, err := store.Approved()
	require.NoError(t, err)
	require.Len(t, first, 3)

	require.NoError(t, os.WriteFile(store.Path, []byte(`[{"id":"9","status":"APPROVED"}]`), 0o644))

	second, err := store.Approved()
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, ids(second))
}

func TestStoreErrors(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "missing.json")).All()
	assert.Error(t, err)

	_, err = writeStore(t, `{"not": "a list"}`).All()
	assert.Error(t, err)
}

func TestFindByIDAndName(t *testing.T) {
	store := writeStore(t, storeFixture)

	tmpl, err := store.FindByID("5")
	require.NoError(t, err)
	assert.Equal(t, "otp", tmpl.Name)

	_, err = store.FindByID("4")
	assert.ErrorIs(t, err, ErrMissingTemplate)

	tmpl, err = store.FindByName("welcome", "ar")
	require.NoError(t, err)
	assert.Equal(t, "2", tmpl.ID)

	tmpl, err = store.FindByName("welcome", "")
	require.NoError(t, err)
	assert.Equal(t, "1", tmpl.ID)

	_, err = store.FindByName("receipt", "")
	assert.ErrorIs(t, err, ErrMissingTemplate)
}

func TestFilterAndFacets(t *testing.T) {
	store := writeStore(t, storeFixture)
	approved, err := store.Approved()
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "5"}, ids(Filter(approved, FilterAll, FilterAll)))
	assert.Equal(t, []string{"1", "2"}, ids(Filter(approved, "MARKETING", "")))
	assert.Equal(t, []string{"2"}, ids(Filter(approved, "MARKETING", "ar")))
	assert.Empty(t, Filter(approved, "UTILITY", FilterAll))

	facets := BuildFacets(approved)
	assert.Equal(t, []string{"ALL", "MARKETING", "AUTHENTICATION"}, facets.Categories)
	assert.Equal(t, []string{"ALL", "en", "ar"}, facets.Languages)
}

func TestBundledTemplatesFile(t *testing.T) {
	store := NewFileStore(filepath.Join("..", "..", "data", "templates.json"))

	approved, err := store.Approved()
	require.NoError(t, err)
	assert.Len(t, approved, 5)

	_, err = store.FindByName("points_statement", "")
	assert.ErrorIs(t, err, ErrMissingTemplate)

	for i := range approved {
		_, err := BuildContent(&approved[i], nil)
		assert.NoError(t, err, approved[i].Name)
	}
}
