package favourites

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T, cities ...string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favourites.json")
	if len(cities) > 0 {
		data, err := json.Marshal(cities)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	s, err := Open(path, DefaultMax, discardLogger())
	require.NoError(t, err)
	return s, path
}

func readFile(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cities []string
	require.NoError(t, json.Unmarshal(data, &cities))
	return cities
}

func TestOpen_MissingFile(t *testing.T) {
	s, path := openTestStore(t)
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.Len())
	assert.NoFileExists(t, path)
	require.NoError(t, s.CheckReadiness(context.Background()))
}

func TestOpen_ExistingFile(t *testing.T) {
	s, _ := openTestStore(t, "London", "Paris")
	assert.Equal(t, []string{"London", "Paris"}, s.List())
	assert.True(t, s.Contains("Paris"))
	assert.False(t, s.Contains("paris"))
}

func TestOpen_InvalidJSONStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favourites.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	s, err := Open(path, DefaultMax, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestOpen_NullJSONStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favourites.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	s, err := Open(path, 0, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, s.List())
	assert.Equal(t, DefaultMax, s.Max())
}

func TestAdd(t *testing.T) {
	s, path := openTestStore(t)

	require.NoError(t, s.Add("London"))
	require.NoError(t, s.Add("Paris"))

	assert.Equal(t, []string{"London", "Paris"}, s.List())
	assert.Equal(t, []string{"London", "Paris"}, readFile(t, path))
}

func TestAdd_WritesIndentedJSON(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.Add("London"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"London\"\n]", string(data))
}

func TestAdd_Duplicate(t *testing.T) {
	s, _ := openTestStore(t, "London")
	require.ErrorIs(t, s.CanAdd("London"), ErrAlreadyExists)
	require.ErrorIs(t, s.Add("London"), ErrAlreadyExists)
	assert.Equal(t, 1, s.Len())
}

func TestAdd_Full(t *testing.T) {
	s, path := openTestStore(t, "London", "Paris", "Rome")

	require.ErrorIs(t, s.CanAdd("Oslo"), ErrFull)
	require.ErrorIs(t, s.Add("Oslo"), ErrFull)
	assert.Equal(t, []string{"London", "Paris", "Rome"}, readFile(t, path))
}

func TestAdd_DuplicateCheckedBeforeCapacity(t *testing.T) {
	s, _ := openTestStore(t, "London", "Paris", "Rome")
	require.ErrorIs(t, s.CanAdd("Rome"), ErrAlreadyExists)
}

func TestAdd_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "favourites.json")
	s, err := Open(path, DefaultMax, discardLogger())
	require.NoError(t, err)

	require.NoError(t, s.Add("Lima"))
	assert.Equal(t, []string{"Lima"}, readFile(t, path))
}

func TestRemove(t *testing.T) {
	s, path := openTestStore(t, "London", "Paris", "Rome")

	require.NoError(t, s.Remove("Paris"))

	assert.Equal(t, []string{"London", "Rome"}, s.List())
	assert.Equal(t, []string{"London", "Rome"}, readFile(t, path))
}

func TestRemove_NotFound(t *testing.T) {
	s, _ := openTestStore(t, "London")
	require.ErrorIs(t, s.Remove("Paris"), ErrNotFound)
}

func TestReplace(t *testing.T) {
	s, path := openTestStore(t, "London", "Paris", "Rome")

	require.NoError(t, s.Replace("Paris", "Berlin"))

	assert.Equal(t, []string{"London", "Berlin", "Rome"}, s.List())
	assert.Equal(t, []string{"London", "Berlin", "Rome"}, readFile(t, path))
}

func TestReplace_Errors(t *testing.T) {
	s, _ := openTestStore(t, "London", "Paris")

	require.ErrorIs(t, s.Replace("Rome", "Berlin"), ErrNotFound)
	require.ErrorIs(t, s.Replace("London", "Paris"), ErrAlreadyExists)
	require.ErrorIs(t, s.CanReplace("London", "Paris"), ErrAlreadyExists)
	assert.Equal(t, []string{"London", "Paris"}, s.List())
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := openTestStore(t, "London")
	got := s.List()
	got[0] = "mutated"
	assert.Equal(t, []string{"London"}, s.List())
}

func TestCommit_WriteFailureLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	// A directory at the file path makes WriteFile fail.
	path := filepath.Join(dir, "favourites.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	s := &Store{path: path, max: DefaultMax, logger: discardLogger(), cities: []string{}, loaded: true}

	require.Error(t, s.Add("London"))
	assert.Empty(t, s.List())
}

func TestCheckReadiness(t *testing.T) {
	s, path := openTestStore(t, "London")
	ctx := context.Background()

	require.NoError(t, s.CheckReadiness(ctx))

	require.NoError(t, os.Remove(path))
	require.NoError(t, s.CheckReadiness(ctx), "absent file is ready")

	require.NoError(t, os.Mkdir(path, 0o755))
	err := s.CheckReadiness(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}
