package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wotd/internal/testutil"
	"github.com/roach88/wotd/internal/words"
)

func TestRenumber(t *testing.T) {
	doc := testutil.Document("20250101", "20250102", "20250103")
	doc.Words[0].ID = 9
	doc.Words[2].ID = 40

	got := Renumber(doc, testutil.Day(2026, 3, 4))

	for i, w := range got.Words {
		assert.Equal(t, i+1, w.ID)
	}
	require.NotNil(t, got.Metadata)
	assert.Equal(t, words.Metadata{Version: DefaultVersion, TotalWords: 3, LastUpdated: "2026-03-04"}, *got.Metadata)

	// Input untouched.
	assert.Equal(t, 9, doc.Words[0].ID)
	assert.Nil(t, doc.Metadata)
}

func TestRenumber_KeepsVersion(t *testing.T) {
	doc := testutil.Document("20250101")
	doc.Metadata = &words.Metadata{Version: "2.1", TotalWords: 99, LastUpdated: "2020-01-01"}

	got := Renumber(doc, testutil.Day(2025, 6, 1))
	assert.Equal(t, "2.1", got.Metadata.Version)
	assert.Equal(t, 1, got.Metadata.TotalWords)
	assert.Equal(t, 99, doc.Metadata.TotalWords)
}

func TestExtend(t *testing.T) {
	doc := testutil.Document("20251230", "20251231")
	pool := []words.Word{testutil.Word(0, ""), testutil.Word(77, "19990101")}
	pool[0].Word, pool[1].Word = "fresh", "newer"

	got, err := Extend(doc, pool, testutil.Day(2026, 1, 5))
	require.NoError(t, err)

	require.Len(t, got.Words, 4)
	assert.Equal(t, 3, got.Words[2].ID)
	assert.Equal(t, "20260101", got.Words[2].Date)
	assert.Equal(t, "fresh", got.Words[2].Word)
	assert.Equal(t, 4, got.Words[3].ID)
	assert.Equal(t, "20260102", got.Words[3].Date)
	assert.Equal(t, 4, got.Metadata.TotalWords)
	assert.Equal(t, "2026-01-05", got.Metadata.LastUpdated)
	assert.Equal(t, "20251230", got.StartDate)

	assert.Len(t, doc.Words, 2)
}

func TestExtend_ValidatesClean(t *testing.T) {
	doc := testutil.Document("20250101")
	pool := []words.Word{testutil.Word(0, ""), testutil.Word(0, "")}
	pool[0].Word, pool[1].Word = "second", "third"

	got, err := Extend(doc, pool, testutil.Day(2025, 1, 1))
	require.NoError(t, err)

	data, err := Encode(got)
	require.NoError(t, err)
	r := Validate("words.json", data)
	assert.Equal(t, []string{WarnCodeWordCount}, codes(r))
}

func TestExtend_EmptyUsesStartDate(t *testing.T) {
	doc := words.Document{StartDate: "20260301", Words: []words.Word{}}

	got, err := Extend(doc, []words.Word{testutil.Word(0, "")}, testutil.Day(2026, 3, 1))
	require.NoError(t, err)
	require.Len(t, got.Words, 1)
	assert.Equal(t, 1, got.Words[0].ID)
	assert.Equal(t, "20260301", got.Words[0].Date)
}

func TestExtend_BadDates(t *testing.T) {
	_, err := Extend(words.Document{}, []words.Word{testutil.Word(0, "")}, testutil.Day(2026, 3, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startDate")

	doc := testutil.Document("not-a-date")
	_, err = Extend(doc, nil, testutil.Day(2026, 3, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word1")
}

func TestDecodePool(t *testing.T) {
	arr := []byte(`[{"word": "alpha", "pronunciation": "AL-fuh"}, {"word": "beta"}]`)
	pool, err := DecodePool(arr)
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "alpha", pool[0].Word)
	assert.Equal(t, "AL-fuh", pool[0].Pronunciation)

	pool, err = DecodePool(words.BundledData())
	require.NoError(t, err)
	assert.Len(t, pool, 10)

	_, err = DecodePool([]byte(`[{`))
	assert.Error(t, err)
	_, err = DecodePool([]byte(`{"startDate": "x"}`))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	doc := testutil.Document("20250101")
	doc.Words[0].Definition = "Less <than> & more."

	data, err := Encode(doc)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "Less <than> & more.")
	assert.Contains(t, s, "\n  \"words\": [\n")
	assert.True(t, s[len(s)-1] == '\n')

	back, err := words.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestEncode_BundledRoundTrip(t *testing.T) {
	doc, err := words.Decode(words.BundledData())
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, string(words.BundledData()), string(data))
}
