package bookmarks

import (
	"encoding/json"
	"log/slog"
	"slices"
)

// DefaultKey is the storage key holding the bookmark array.
const DefaultKey = "word-of-the-day-bookmarks"

// Store exposes toggle semantics over the bookmark array.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithKey stores the array under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger for storage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store over storage.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, key: DefaultKey, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the bookmarked dates, oldest first.
// It never fails: any storage or decoding problem reads as empty.
func (s *Store) List() []string {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		s.logger.Error("error reading bookmarks", "key", s.key, "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var dates []string
	if err := json.Unmarshal([]byte(raw), &dates); err != nil {
		s.logger.Error("error reading bookmarks", "key", s.key, "error", err)
		return []string{}
	}
	if dates == nil {
		return []string{}
	}
	return dates
}

// Has reports whether date is bookmarked.
func (s *Store) Has(date string) bool {
	return slices.Contains(s.List(), date)
}

// Toggle flips the bookmark for date and returns whether it is now
// bookmarked. The return value is the intended state even if persisting
// it failed; the failure is logged.
func (s *Store) Toggle(date string) bool {
	current := s.List()

	var next []string
	bookmarked := !slices.Contains(current, date)
	if bookmarked {
		next = append(current, date)
	} else {
		next = slices.DeleteFunc(current, func(d string) bool { return d == date })
	}

	s.save(next)
	return bookmarked
}

// Clear removes every bookmark. It is idempotent.
func (s *Store) Clear() {
	if err := s.storage.Delete(s.key); err != nil {
		s.logger.Error("error clearing bookmarks", "key", s.key, "error", err)
	}
}

func (s *Store) save(dates []string) {
	if dates == nil {
		dates = []string{}
	}
	data, err := json.Marshal(dates)
	if err != nil {
		s.logger.Error("error saving bookmarks", "key", s.key, "error", err)
		return
	}
	if err := s.storage.Set(s.key, string(data)); err != nil {
		s.logger.Error("error saving bookmarks", "key", s.key, "error", err)
	}
}
