package bookmarks

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStorage fails every operation, like a browser with storage
// disabled or over quota.
type brokenStorage struct {
	getErr, setErr, deleteErr error
	value                     string
	present                   bool
	sets                      int
}

func (b *brokenStorage) Get(string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	return b.value, b.present, nil
}

func (b *brokenStorage) Set(_, value string) error {
	b.sets++
	if b.setErr != nil {
		return b.setErr
	}
	b.value, b.present = value, true
	return nil
}

func (b *brokenStorage) Delete(string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.value, b.present = "", false
	return nil
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestToggle_Scenario(t *testing.T) {
	s := New(NewMemoryStorage())

	assert.Equal(t, []string{}, s.List())

	assert.True(t, s.Toggle("20251207"))
	assert.Equal(t, []string{"20251207"}, s.List())

	assert.False(t, s.Toggle("20251207"))
	assert.Equal(t, []string{}, s.List())
}

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	s := New(NewMemoryStorage())
	s.Toggle("20251208")

	for _, date := range []string{"20251207", "20251208"} {
		before := s.Has(date)
		s.Toggle(date)
		s.Toggle(date)
		assert.Equal(t, before, s.Has(date), date)
	}
}

func TestList_InsertionOrder(t *testing.T) {
	s := New(NewMemoryStorage())
	s.Toggle("20251209")
	s.Toggle("20251207")
	s.Toggle("20251208")
	s.Toggle("20251207") // removed

	assert.Equal(t, []string{"20251209", "20251208"}, s.List())
}

func TestHas(t *testing.T) {
	s := New(NewMemoryStorage())
	assert.False(t, s.Has("20251207"))
	s.Toggle("20251207")
	assert.True(t, s.Has("20251207"))
	assert.False(t, s.Has("20251208"))
}

func TestClear(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage)
	s.Toggle("20251207")
	s.Toggle("20251208")

	s.Clear()
	assert.Equal(t, []string{}, s.List())
	assert.False(t, s.Has("20251207"))

	_, ok, err := storage.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "key is removed, not overwritten")

	// Idempotent.
	s.Clear()
	assert.Empty(t, s.List())
}

func TestList_CorruptValue(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(DefaultKey, "not json {"))
	logger, logs := captureLogger()
	s := New(storage, WithLogger(logger))

	assert.Equal(t, []string{}, s.List())
	assert.False(t, s.Has("20251207"))
	assert.Contains(t, logs.String(), "error reading bookmarks")
}

func TestList_WrongShape(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2,3]`, `"20251207"`} {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Set(DefaultKey, raw))
		logger, logs := captureLogger()

		assert.Equal(t, []string{}, New(storage, WithLogger(logger)).List(), raw)
		assert.NotEmpty(t, logs.String(), raw)
	}
}

func TestList_NullIsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(DefaultKey, "null"))
	assert.Equal(t, []string{}, New(storage).List())
}

func TestToggle_OverwritesCorruptValue(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(DefaultKey, "garbage"))
	logger, _ := captureLogger()
	s := New(storage, WithLogger(logger))

	assert.True(t, s.Toggle("20251207"))
	assert.Equal(t, []string{"20251207"}, s.List())
}

func TestStorageFailures_NeverPropagate(t *testing.T) {
	boom := errors.New("quota exceeded")
	storage := &brokenStorage{getErr: boom, setErr: boom, deleteErr: boom}
	logger, logs := captureLogger()
	s := New(storage, WithLogger(logger))

	assert.Equal(t, []string{}, s.List())
	assert.False(t, s.Has("20251207"))
	assert.True(t, s.Toggle("20251207"), "reports the intended state")
	assert.NotPanics(t, s.Clear)

	out := logs.String()
	assert.Contains(t, out, "error reading bookmarks")
	assert.Contains(t, out, "error saving bookmarks")
	assert.Contains(t, out, "error clearing bookmarks")
	assert.Contains(t, out, "quota exceeded")
}

func TestToggle_WriteFailureReportsIntendedState(t *testing.T) {
	storage := &brokenStorage{setErr: errors.New("quota exceeded")}
	logger, _ := captureLogger()
	s := New(storage, WithLogger(logger))

	assert.True(t, s.Toggle("20251207"))
	assert.Equal(t, 1, storage.sets)
	// Durability check through Has shows the write did not land.
	assert.False(t, s.Has("20251207"))
}

func TestWithKey(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage, WithKey("other"))
	s.Toggle("20251207")

	raw, ok, err := storage.Get("other")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["20251207"]`, raw)

	_, ok, _ = storage.Get(DefaultKey)
	assert.False(t, ok)
}

func TestSave_EmptyListIsArray(t *testing.T) {
	storage := NewMemoryStorage()
	s := New(storage)
	s.Toggle("20251207")
	s.Toggle("20251207")

	raw, ok, err := storage.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}
