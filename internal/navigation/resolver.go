// Package navigation computes sequential and date-gated movement through a
// word collection.
//
// Previous and next are keyed off the sequential id, not slice position, so
// a gap in the ids resolves to absent instead of a wrong neighbour.
// Forward movement is gated on the caller's reference time: a word dated
// after the reference day is never handed out by VisibleNext or
// PickRandomVisible. Backward movement is unrestricted.
//
// The reference time is always an explicit argument; nothing in this
// package reads the system clock.
package navigation

import (
	"math/rand/v2"
	"time"

	"github.com/roach88/wotd/internal/words"
)

// IntN returns a uniformly distributed int in [0, n). n is always > 0.
type IntN func(n int) int

// Resolver navigates a single immutable collection.
type Resolver struct {
	words *words.Collection
	intN  IntN
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithRand replaces the random source used by PickRandomVisible.
func WithRand(intN IntN) Option {
	return func(r *Resolver) {
		if intN != nil {
			r.intN = intN
		}
	}
}

// New creates a Resolver over c.
func New(c *words.Collection, opts ...Option) *Resolver {
	r := &Resolver{words: c, intN: rand.IntN}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Words returns the collection the resolver navigates.
func (r *Resolver) Words() *words.Collection {
	return r.words
}

// Previous returns the word whose id is one less than the word dated date.
// It is absent when date is unknown or already the lowest id.
func (r *Resolver) Previous(date string) (words.Word, bool) {
	cur, ok := r.words.ByDate(date)
	if !ok || cur.ID == r.words.MinID() {
		return words.Word{}, false
	}
	return r.words.ByID(cur.ID - 1)
}

// Next returns the word whose id is one more than the word dated date.
// It is absent when date is unknown or already the highest id.
func (r *Resolver) Next(date string) (words.Word, bool) {
	cur, ok := r.words.ByDate(date)
	if !ok || cur.ID == r.words.MaxID() {
		return words.Word{}, false
	}
	return r.words.ByID(cur.ID + 1)
}

// IsFuture reports whether w is scheduled for a calendar day after now's.
//
// Both sides are compared as midnight in now's location. A record whose
// date does not parse is treated as future so that it is never exposed.
func IsFuture(w words.Word, now time.Time) bool {
	day, err := words.ParseDate(w.Date, now.Location())
	if err != nil {
		return true
	}
	return day.After(words.StartOfDay(now))
}

// Visible is the inverse of IsFuture.
func Visible(w words.Word, now time.Time) bool {
	return !IsFuture(w, now)
}

// VisibleNext is Next with future-dated words suppressed.
func (r *Resolver) VisibleNext(date string, now time.Time) (words.Word, bool) {
	next, ok := r.Next(date)
	if !ok || IsFuture(next, now) {
		return words.Word{}, false
	}
	return next, true
}

// PickRandomVisible picks uniformly among words that are not future-dated
// and not dated exclude. It is absent when no such word exists.
func (r *Resolver) PickRandomVisible(exclude string, now time.Time) (words.Word, bool) {
	var candidates []words.Word
	for _, w := range r.words.All() {
		if w.Date == exclude || IsFuture(w, now) {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) == 0 {
		return words.Word{}, false
	}
	return candidates[r.intN(len(candidates))], true
}

// Neighbors bundles what a word page needs to render its navigation bar.
type Neighbors struct {
	Previous   *words.Word `json:"previous,omitempty"`
	Next       *words.Word `json:"next,omitempty"`
	ComingSoon bool        `json:"coming_soon"`
}

// Around resolves the navigation for the word dated date at time now.
// For a future-dated word Next is always nil: nothing beyond a withheld
// word is reachable.
func (r *Resolver) Around(date string, now time.Time) Neighbors {
	var n Neighbors
	if prev, ok := r.Previous(date); ok {
		n.Previous = &prev
	}
	cur, ok := r.words.ByDate(date)
	if !ok {
		return n
	}
	n.ComingSoon = IsFuture(cur, now)
	if n.ComingSoon {
		return n
	}
	if next, ok := r.VisibleNext(date, now); ok {
		n.Next = &next
	}
	return n
}
