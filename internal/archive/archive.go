// Package archive searches and groups a word collection the way the
// archive and bookmarks pages present it.
package archive

import (
	"slices"
	"strings"
	"time"

	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/words"
)

// All matches every value of a filter dimension.
const All = "all"

// Filter narrows a word list. Zero fields match everything.
type Filter struct {
	Query        string `json:"q,omitempty"`
	Difficulty   string `json:"difficulty,omitempty" validate:"omitempty,oneof=all beginner intermediate advanced"`
	PartOfSpeech string `json:"pos,omitempty"`
}

// IsZero reports whether f matches every word.
func (f Filter) IsZero() bool {
	return f.Query == "" && matchesAll(f.Difficulty) && matchesAll(f.PartOfSpeech)
}

// Match reports whether w passes every dimension of f.
//
// The query is a case-insensitive substring of the word or its
// definition. Difficulty and part of speech compare exactly.
func (f Filter) Match(w words.Word) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(w.Word), q) &&
			!strings.Contains(strings.ToLower(w.Definition), q) {
			return false
		}
	}
	if !matchesAll(f.Difficulty) && string(w.Difficulty) != f.Difficulty {
		return false
	}
	if !matchesAll(f.PartOfSpeech) && w.PartOfSpeech != f.PartOfSpeech {
		return false
	}
	return true
}

func matchesAll(v string) bool {
	return v == "" || v == All
}

// Search returns the words matching f in their original order.
// The result is never nil.
func Search(all []words.Word, f Filter) []words.Word {
	out := make([]words.Word, 0, len(all))
	for _, w := range all {
		if f.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// FacetSet holds the filter values present in a word list.
type FacetSet struct {
	Difficulties  []string `json:"difficulties"`
	PartsOfSpeech []string `json:"parts_of_speech"`
}

// Facets returns the sorted distinct difficulties and parts of speech.
// Words without a difficulty contribute none.
func Facets(all []words.Word) FacetSet {
	difficulties := make(map[string]struct{})
	parts := make(map[string]struct{})
	for _, w := range all {
		if w.Difficulty != "" {
			difficulties[string(w.Difficulty)] = struct{}{}
		}
		parts[w.PartOfSpeech] = struct{}{}
	}
	return FacetSet{
		Difficulties:  sortedKeys(difficulties),
		PartsOfSpeech: sortedKeys(parts),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Bookmarked resolves bookmarked dates to records, most recently
// bookmarked first. Dates with no record are dropped.
func Bookmarked(c *words.Collection, dates []string) []words.Word {
	out := make([]words.Word, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		if w, ok := c.ByDate(dates[i]); ok {
			out = append(out, w)
		}
	}
	return out
}

// BookmarkedVisible is Bookmarked without the words still withheld at
// now. The result is never nil.
func BookmarkedVisible(c *words.Collection, dates []string, now time.Time) []words.Word {
	out := make([]words.Word, 0, len(dates))
	for _, w := range Bookmarked(c, dates) {
		if navigation.Visible(w, now) {
			out = append(out, w)
		}
	}
	return out
}
