package words

// Difficulty is the optional learning level of a word.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Word is a single dated vocabulary record.
//
// Word values returned by a Collection share their Synonyms and Tags
// slices with the collection. Treat them as read-only.
type Word struct {
	ID            int        `json:"id"`
	Word          string     `json:"word"`
	Date          string     `json:"date"` // YYYYMMDD
	Pronunciation string     `json:"pronunciation"`
	PartOfSpeech  string     `json:"partOfSpeech"`
	Definition    string     `json:"definition"`
	Example       string     `json:"example"`
	Etymology     string     `json:"etymology"`
	Synonyms      []string   `json:"synonyms"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// Metadata describes a data file revision.
type Metadata struct {
	Version     string `json:"version"`
	TotalWords  int    `json:"totalWords"`
	LastUpdated string `json:"lastUpdated"` // YYYY-MM-DD
}

// Document is the on-disk shape of the word data file.
type Document struct {
	StartDate string    `json:"startDate"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Words     []Word    `json:"words"`
}
