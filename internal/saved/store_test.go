package saved

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saved_parts.json"))
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

func TestOpen_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "saved_parts.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestAdd_StampsAndPersists(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	require.NoError(t, s.Add(model.SavedPart{PartName: "Headlight", EbaySoldPrice: 125, JunkyardPrice: 39.99}))

	parts := s.List()
	require.Len(t, parts, 1)
	assert.False(t, parts[0].SavedAt.IsZero())

	// The file round-trips.
	reopened, err := Open(s.path)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	assert.Equal(t, "Headlight", reopened.List()[0].PartName)
}

func TestAdd_PreservesCallerSavedAt(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	stamp := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, s.Add(model.SavedPart{PartName: "Hood", SavedAt: stamp}))
	assert.Equal(t, stamp, s.List()[0].SavedAt)
}

func TestAdd_ReplaceCaseInsensitiveKeepsPosition(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	require.NoError(t, s.Add(model.SavedPart{PartName: "Headlight", EbaySoldPrice: 100}))
	require.NoError(t, s.Add(model.SavedPart{PartName: "Fender", EbaySoldPrice: 50}))
	require.NoError(t, s.Add(model.SavedPart{PartName: "HEADLIGHT ", EbaySoldPrice: 140}))

	parts := s.List()
	require.Len(t, parts, 2)
	// Second save won, in the original position.
	assert.Equal(t, "HEADLIGHT ", parts[0].PartName)
	assert.Equal(t, 140.0, parts[0].EbaySoldPrice)
	assert.Equal(t, "Fender", parts[1].PartName)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Add(model.SavedPart{PartName: "Headlight"}))

	removed, err := s.Remove("headlight")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, s.Len())
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Add(model.SavedPart{PartName: "Headlight"}))

	removed, err := s.Remove("taillight")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, s.Len())
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Add(model.SavedPart{PartName: "Headlight"}))

	require.NoError(t, s.Update("HEADLIGHT", "https://youtube.example/watch?v=abc", "pulls easy with a T20"))

	got := s.List()[0]
	assert.Equal(t, "https://youtube.example/watch?v=abc", got.YouTubeLink)
	assert.Equal(t, "pulls easy with a T20", got.Notes)
}

func TestUpdate_UnknownPart(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	err := s.Update("ghost", "", "")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestList_InsertionOrderAndCopy(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Add(model.SavedPart{PartName: "a"}))
	require.NoError(t, s.Add(model.SavedPart{PartName: "b"}))
	require.NoError(t, s.Add(model.SavedPart{PartName: "c"}))

	parts := s.List()
	assert.Equal(t, "a", parts[0].PartName)
	assert.Equal(t, "c", parts[2].PartName)

	// Mutating the returned slice must not touch the store.
	parts[0].PartName = "mutated"
	assert.Equal(t, "a", s.List()[0].PartName)
}

func TestClear_WritesEmptyArray(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Add(model.SavedPart{PartName: "a"}))
	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.Len())

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)

	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Empty(t, raw)
}

func TestPersist_FailureSurfaces(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "saved_parts.json"))
	require.NoError(t, err)

	// Point the store into a directory that no longer exists.
	s.path = filepath.Join(dir, "gone", "saved_parts.json")
	require.Error(t, s.Add(model.SavedPart{PartName: "Headlight"}))
}
