package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/wotd/internal/words"
)

// DefaultVersion is written when a document has no metadata yet.
const DefaultVersion = "1.0"

// Renumber reassigns ids 1..N by position and refreshes the metadata
// total and lastUpdated from now.
func Renumber(doc words.Document, now time.Time) words.Document {
	out := clone(doc)
	for i := range out.Words {
		out.Words[i].ID = i + 1
	}
	touch(&out, now)
	return out
}

// Extend appends pool entries to the calendar. The first new entry is
// dated one day after the last record, or startDate when there are no
// records, and ids continue from the last record. Any id or date on a
// pool entry is overwritten.
func Extend(doc words.Document, pool []words.Word, now time.Time) (words.Document, error) {
	out := clone(doc)

	var (
		next   time.Time
		nextID = 1
		err    error
	)
	if n := len(out.Words); n > 0 {
		last := out.Words[n-1]
		next, err = words.ParseDate(last.Date, time.UTC)
		if err != nil {
			return words.Document{}, fmt.Errorf("last word %q: %w", last.Word, err)
		}
		next = next.AddDate(0, 0, 1)
		nextID = last.ID + 1
	} else {
		next, err = words.ParseDate(out.StartDate, time.UTC)
		if err != nil {
			return words.Document{}, fmt.Errorf("startDate: %w", err)
		}
	}

	for i, w := range pool {
		w.ID = nextID + i
		w.Date = words.FormatDate(next.AddDate(0, 0, i))
		out.Words = append(out.Words, w)
	}
	if out.StartDate == "" && len(out.Words) > 0 {
		out.StartDate = out.Words[0].Date
	}
	touch(&out, now)
	return out, nil
}

// DecodePool reads new word entries from either a bare JSON array of
// words or a full data document.
func DecodePool(data []byte) ([]words.Word, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pool []words.Word
		if err := json.Unmarshal(trimmed, &pool); err != nil {
			return nil, fmt.Errorf("parse word pool: %w", err)
		}
		return pool, nil
	}
	doc, err := words.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse word pool: %w", err)
	}
	return doc.Words, nil
}

// Encode renders doc as two-space indented JSON with a trailing newline.
func Encode(doc words.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func clone(doc words.Document) words.Document {
	out := doc
	out.Words = append([]words.Word(nil), doc.Words...)
	if doc.Metadata != nil {
		md := *doc.Metadata
		out.Metadata = &md
	}
	return out
}

func touch(doc *words.Document, now time.Time) {
	if doc.Metadata == nil {
		doc.Metadata = &words.Metadata{Version: DefaultVersion}
	}
	doc.Metadata.TotalWords = len(doc.Words)
	doc.Metadata.LastUpdated = now.Format(time.DateOnly)
}
