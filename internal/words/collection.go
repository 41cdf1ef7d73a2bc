package words

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Collection is the immutable, date-ordered set of words.
//
// Lookups go through hash indices built once in New; the ordered slice is
// kept for All and Slugs. A Collection is safe for concurrent reads.
type Collection struct {
	words     []Word
	startDate string
	metadata  *Metadata

	byDate map[string]int
	byName map[string]int
	byID   map[int]int

	minID int
	maxID int
}

// New builds a Collection from a parsed document.
// The document's word slice is copied; later changes to doc do not leak in.
func New(doc Document) *Collection {
	c := &Collection{
		words:     make([]Word, len(doc.Words)),
		startDate: doc.StartDate,
		byDate:    make(map[string]int, len(doc.Words)),
		byName:    make(map[string]int, len(doc.Words)),
		byID:      make(map[int]int, len(doc.Words)),
	}
	copy(c.words, doc.Words)
	if doc.Metadata != nil {
		md := *doc.Metadata
		c.metadata = &md
	}

	for i, w := range c.words {
		// First occurrence wins for every index.
		if _, ok := c.byDate[w.Date]; !ok {
			c.byDate[w.Date] = i
		}
		key := nameKey(w.Word)
		if _, ok := c.byName[key]; !ok {
			c.byName[key] = i
		}
		if _, ok := c.byID[w.ID]; !ok {
			c.byID[w.ID] = i
		}
		if i == 0 || w.ID < c.minID {
			c.minID = w.ID
		}
		if i == 0 || w.ID > c.maxID {
			c.maxID = w.ID
		}
	}
	return c
}

// nameKey folds case after NFC normalization so that "Café" and "CAFÉ"
// written with either combining or precomposed accents compare equal.
func nameKey(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// All returns every word in stored (ascending date) order.
// The returned slice is the collection's own view; do not modify it.
func (c *Collection) All() []Word {
	return c.words
}

// Len returns the number of words.
func (c *Collection) Len() int {
	return len(c.words)
}

// StartDate returns the data file's declared start date.
func (c *Collection) StartDate() string {
	return c.startDate
}

// Metadata returns the data file metadata, if any.
func (c *Collection) Metadata() (Metadata, bool) {
	if c.metadata == nil {
		return Metadata{}, false
	}
	return *c.metadata, true
}

// ByDate returns the word dated exactly date.
func (c *Collection) ByDate(date string) (Word, bool) {
	return c.at(c.byDate, date)
}

// ByName returns the word whose name matches name ignoring case.
func (c *Collection) ByName(name string) (Word, bool) {
	return c.at(c.byName, nameKey(name))
}

// ByID returns the word with the given sequential id.
func (c *Collection) ByID(id int) (Word, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}

// BySlug resolves an 8-digit slug as a date and anything else as a name.
func (c *Collection) BySlug(slug string) (Word, bool) {
	if IsDateSlug(slug) {
		return c.ByDate(slug)
	}
	return c.ByName(slug)
}

// Slugs returns the date and the lower-cased name of every word, in
// stored order: two entries per word.
func (c *Collection) Slugs() []string {
	slugs := make([]string, 0, 2*len(c.words))
	for _, w := range c.words {
		slugs = append(slugs, w.Date, strings.ToLower(w.Word))
	}
	return slugs
}

// MinID and MaxID bound the ids present in the collection.
// Both are zero for an empty collection.
func (c *Collection) MinID() int { return c.minID }
func (c *Collection) MaxID() int { return c.maxID }

// Today returns the word scheduled for now's calendar day. When no word
// carries that date it falls back to the first word, so a visitor who
// arrives before the start date or after the last entry still lands on
// a word. It is absent only for an empty collection.
func (c *Collection) Today(now time.Time) (Word, bool) {
	if w, ok := c.ByDate(FormatDate(now)); ok {
		return w, true
	}
	if len(c.words) == 0 {
		return Word{}, false
	}
	return c.words[0], true
}

func (c *Collection) at(index map[string]int, key string) (Word, bool) {
	i, ok := index[key]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}
