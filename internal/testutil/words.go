package testutil

import (
	"fmt"
	"strings"

	"github.com/roach88/wotd/internal/words"
)

// Document builds a data document with one word per date.
//
// Ids run 1..N in argument order and names are "word1", "word2", ... so
// tests can refer to records by position. Every required text field is
// filled in.
func Document(dates ...string) words.Document {
	doc := words.Document{Words: make([]words.Word, 0, len(dates))}
	if len(dates) > 0 {
		doc.StartDate = dates[0]
	}
	for i, date := range dates {
		doc.Words = append(doc.Words, Word(i+1, date))
	}
	return doc
}

// Collection is New(Document(dates...)).
func Collection(dates ...string) *words.Collection {
	return words.New(Document(dates...))
}

// Word builds a complete record with the given id and date.
func Word(id int, date string) words.Word {
	name := fmt.Sprintf("word%d", id)
	return words.Word{
		ID:            id,
		Word:          name,
		Date:          date,
		Pronunciation: strings.ToUpper(name),
		PartOfSpeech:  "noun",
		Definition:    "Definition of " + name + ".",
		Example:       "An example using " + name + ".",
		Etymology:     "Invented for tests.",
		Synonyms:      []string{name + "-synonym"},
		Difficulty:    words.DifficultyBeginner,
	}
}
