package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func Test_Load_MissingFile(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "absent.json")
	// when
	got, err := Load[[]record](path)
	// then
	require.NoError(t, err)
	assert.Empty(t, got)
}

func Test_Load_MalformedFile(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	// when
	_, err := Load[[]record](path)
	// then
	assert.Error(t, err)
}

func Test_SaveLoad_RoundTrip(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "records.json")
	want := []record{
		{ID: "00001", Title: "first", Tags: []string{"a", "b"}},
		{ID: "00002", Title: "second", Tags: []string{}},
	}
	// when
	require.NoError(t, Save(path, want))
	got, err := Load[[]record](path)
	// then
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func Test_Save_CreatesMissingDirectory(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "data", "records.json")
	// when
	err := Save(path, []record{{ID: "00001"}})
	// then
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func Test_Save_PrettyPrints(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, Save(path, []record{{ID: "00001", Title: "first"}}))
	// when
	data, err := os.ReadFile(path)
	// then
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
}

func Test_Save_LeavesNoTempFilesBehind(t *testing.T) {
	// given
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	// when
	require.NoError(t, Save(path, []record{{ID: "00001"}}))
	// then
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "records.json", entries[0].Name())
}
