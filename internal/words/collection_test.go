package words

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() Document {
	return Document{
		StartDate: "20251207",
		Metadata:  &Metadata{Version: "1.0", TotalWords: 3, LastUpdated: "2025-12-07"},
		Words: []Word{
			{ID: 1, Word: "abundant", Date: "20251207", PartOfSpeech: "adjective", Definition: "Plentiful."},
			{ID: 2, Word: "Advocate", Date: "20251208", PartOfSpeech: "verb", Definition: "To support."},
			{ID: 3, Word: "ambiguous", Date: "20251209", PartOfSpeech: "adjective", Definition: "Unclear."},
		},
	}
}

func TestByDate(t *testing.T) {
	c := New(sampleDoc())

	for _, w := range c.All() {
		got, ok := c.ByDate(w.Date)
		require.True(t, ok, "date %s", w.Date)
		assert.Equal(t, w.Date, got.Date)
	}

	_, ok := c.ByDate("20300101")
	assert.False(t, ok)
	_, ok = c.ByDate("")
	assert.False(t, ok)
}

func TestByName_CaseInsensitive(t *testing.T) {
	c := New(sampleDoc())

	for _, name := range []string{"abundant", "ABUNDANT", "Abundant", "aBuNdAnT"} {
		got, ok := c.ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, 1, got.ID)
	}

	for _, w := range c.All() {
		lower, ok1 := c.ByName(strings.ToLower(w.Word))
		upper, ok2 := c.ByName(strings.ToUpper(w.Word))
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, lower, upper)
	}

	_, ok := c.ByName("nonexistent")
	assert.False(t, ok)
}

func TestByName_UnicodeFolding(t *testing.T) {
	c := New(Document{Words: []Word{
		{ID: 1, Word: "Caf\u00e9", Date: "20250101"},
	}})

	got, ok := c.ByName("CAFE\u0301") // decomposed accent
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
}

func TestByName_FirstMatchWins(t *testing.T) {
	c := New(Document{Words: []Word{
		{ID: 1, Word: "echo", Date: "20250101"},
		{ID: 2, Word: "Echo", Date: "20250102"},
	}})

	got, ok := c.ByName("ECHO")
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
}

func TestBySlug(t *testing.T) {
	c := New(sampleDoc())

	got, ok := c.BySlug("20251207")
	require.True(t, ok)
	assert.Equal(t, "20251207", got.Date)

	got, ok = c.BySlug("Abundant")
	require.True(t, ok)
	assert.Equal(t, "abundant", got.Word)

	_, ok = c.BySlug("nonexistent")
	assert.False(t, ok)

	// Eight digits never fall through to a name lookup.
	_, ok = c.BySlug("20991231")
	assert.False(t, ok)
}

func TestSlugs_RoundTrip(t *testing.T) {
	c := New(sampleDoc())
	slugs := c.Slugs()

	require.Len(t, slugs, 2*c.Len())
	assert.Equal(t, []string{"20251207", "abundant", "20251208", "advocate", "20251209", "ambiguous"}, slugs)

	for _, s := range slugs {
		_, ok := c.BySlug(s)
		assert.True(t, ok, "slug %q should resolve", s)
	}
}

func TestAll_StableView(t *testing.T) {
	c := New(sampleDoc())
	a, b := c.All(), c.All()
	require.Len(t, a, 3)
	assert.Same(t, &a[0], &b[0])
}

func TestNew_CopiesInput(t *testing.T) {
	doc := sampleDoc()
	c := New(doc)
	doc.Words[0].Word = "changed"

	got, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "abundant", got.Word)
}

func TestIDBounds(t *testing.T) {
	c := New(sampleDoc())
	assert.Equal(t, 1, c.MinID())
	assert.Equal(t, 3, c.MaxID())

	empty := New(Document{})
	assert.Equal(t, 0, empty.MinID())
	assert.Equal(t, 0, empty.MaxID())
	assert.Empty(t, empty.Slugs())
}

func TestMetadata(t *testing.T) {
	c := New(sampleDoc())
	md, ok := c.Metadata()
	require.True(t, ok)
	assert.Equal(t, 3, md.TotalWords)
	assert.Equal(t, "20251207", c.StartDate())

	_, ok = New(Document{}).Metadata()
	assert.False(t, ok)
}

func TestToday(t *testing.T) {
	c := New(sampleDoc())

	now := time.Date(2025, 12, 8, 15, 30, 0, 0, time.Local)
	got, ok := c.Today(now)
	require.True(t, ok)
	assert.Equal(t, "20251208", got.Date)

	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	got, ok = c.Today(before)
	require.True(t, ok)
	assert.Equal(t, 1, got.ID, "falls back to the first word")

	_, ok = New(Document{}).Today(now)
	assert.False(t, ok)
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyAdvanced.Valid())
	assert.False(t, Difficulty("expert").Valid())
	assert.False(t, Difficulty("").Valid())
}
