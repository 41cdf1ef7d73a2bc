// Package dataset checks and maintains the word data file.
//
// Validate runs a CUE schema over the raw file and then the integrity
// checks the loader does not enforce. Renumber and Extend rewrite a
// Document and never mutate their input.
package dataset

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/wotd/internal/words"
)

//go:embed schema.cue
var schemaSource string

// ExpectedWords is the size of a full calendar year of words.
const ExpectedWords = 365

// Validation error codes (E2xx) and warning codes (W2xx).
const (
	ErrCodeSyntax        = "E201" // file is not valid JSON
	ErrCodeSchema        = "E202" // schema violation
	ErrCodeDuplicateWord = "E203" // same word twice, ignoring case
	ErrCodeDuplicateDate = "E204" // same date twice
	ErrCodeDuplicateID   = "E205" // same id twice
	ErrCodeNoWords       = "E206" // words array missing or empty

	WarnCodeIDPosition = "W201" // id differs from 1-based position
	WarnCodeNoSynonyms = "W202" // empty synonyms
	WarnCodeDateOrder  = "W203" // dates not strictly increasing
	WarnCodeTotalWords = "W204" // metadata.totalWords differs from count
	WarnCodeWordCount  = "W205" // count differs from ExpectedWords
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a data file.
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", i.Code)
	if i.Line > 0 {
		fmt.Fprintf(&b, " line %d:", i.Line)
	}
	if i.Field != "" {
		fmt.Fprintf(&b, " %s:", i.Field)
	}
	b.WriteString(" ")
	b.WriteString(i.Message)
	return b.String()
}

// Report is the outcome of validating one file.
type Report struct {
	File      string  `json:"file"`
	StartDate string  `json:"start_date,omitempty"`
	Words     int     `json:"words"`
	Errors    int     `json:"errors"`
	Warnings  int     `json:"warnings"`
	Issues    []Issue `json:"issues"`
}

// OK reports whether the file has no errors. Warnings are allowed.
func (r *Report) OK() bool {
	return r.Errors == 0
}

func (r *Report) add(i Issue) {
	switch i.Severity {
	case SeverityError:
		r.Errors++
	case SeverityWarning:
		r.Warnings++
	}
	r.Issues = append(r.Issues, i)
}

// Validate checks the data file contents. name labels positions.
// All problems are collected; it does not stop at the first one.
func Validate(name string, data []byte) *Report {
	r := &Report{File: name, Issues: []Issue{}}

	expr, err := cuejson.Extract(name, data)
	if err != nil {
		r.add(cueIssue(ErrCodeSyntax, name, err))
		return r
	}

	ctx := cuecontext.New()
	v := ctx.BuildExpr(expr)
	if err := v.Err(); err != nil {
		r.add(cueIssue(ErrCodeSyntax, name, err))
		return r
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is fixed at build time.
		panic(fmt.Sprintf("dataset: invalid schema: %v", err))
	}

	unified := schema.LookupPath(cue.ParsePath("#Document")).Unify(v)
	if err := unified.Validate(cue.Concrete(true), cue.All()); err != nil {
		for _, e := range cueerrors.Errors(err) {
			r.add(cueIssue(ErrCodeSchema, name, e))
		}
	}

	var doc words.Document
	if err := v.Decode(&doc); err != nil {
		// Shape is wrong; the schema issues already describe it.
		if r.Errors == 0 {
			r.add(cueIssue(ErrCodeSchema, name, err))
		}
		return r
	}
	r.StartDate = doc.StartDate
	r.Words = len(doc.Words)

	checkIntegrity(r, doc, func(i int) int {
		return lineOf(v.LookupPath(cue.MakePath(cue.Str("words"), cue.Index(i))))
	})
	return r
}

// checkIntegrity applies the cross-record rules. line maps a word index
// to its line in the source, or 0 when unknown.
func checkIntegrity(r *Report, doc words.Document, line func(int) int) {
	if len(doc.Words) == 0 {
		r.add(Issue{
			Code:     ErrCodeNoWords,
			Severity: SeverityError,
			Field:    "words",
			Message:  "no words found in data file",
		})
		return
	}

	seenWords := make(map[string]bool, len(doc.Words))
	seenDates := make(map[string]bool, len(doc.Words))
	seenIDs := make(map[int]bool, len(doc.Words))

	for i, w := range doc.Words {
		field := "words." + strconv.Itoa(i)
		at := line(i)

		lower := strings.ToLower(w.Word)
		if seenWords[lower] {
			r.add(Issue{Code: ErrCodeDuplicateWord, Severity: SeverityError, Field: field + ".word", Line: at,
				Message: fmt.Sprintf("duplicate word %q", w.Word)})
		}
		seenWords[lower] = true

		if seenDates[w.Date] {
			r.add(Issue{Code: ErrCodeDuplicateDate, Severity: SeverityError, Field: field + ".date", Line: at,
				Message: fmt.Sprintf("duplicate date %s", w.Date)})
		}
		seenDates[w.Date] = true

		if seenIDs[w.ID] {
			r.add(Issue{Code: ErrCodeDuplicateID, Severity: SeverityError, Field: field + ".id", Line: at,
				Message: fmt.Sprintf("duplicate id %d", w.ID)})
		}
		seenIDs[w.ID] = true

		if w.ID != i+1 {
			r.add(Issue{Code: WarnCodeIDPosition, Severity: SeverityWarning, Field: field + ".id", Line: at,
				Message: fmt.Sprintf("word %q: id %d doesn't match position %d", w.Word, w.ID, i+1)})
		}

		if len(w.Synonyms) == 0 {
			r.add(Issue{Code: WarnCodeNoSynonyms, Severity: SeverityWarning, Field: field + ".synonyms", Line: at,
				Message: fmt.Sprintf("word %q: no synonyms provided", w.Word)})
		}

		if i > 0 {
			prev := doc.Words[i-1].Date
			if words.IsDateSlug(prev) && words.IsDateSlug(w.Date) && w.Date <= prev {
				r.add(Issue{Code: WarnCodeDateOrder, Severity: SeverityWarning, Field: field + ".date", Line: at,
					Message: fmt.Sprintf("date %s does not follow %s", w.Date, prev)})
			}
		}
	}

	if doc.Metadata != nil && doc.Metadata.TotalWords != len(doc.Words) {
		r.add(Issue{
			Code:     WarnCodeTotalWords,
			Severity: SeverityWarning,
			Field:    "metadata.totalWords",
			Message:  fmt.Sprintf("metadata.totalWords is %d, found %d words", doc.Metadata.TotalWords, len(doc.Words)),
		})
	}

	if len(doc.Words) != ExpectedWords {
		r.add(Issue{
			Code:     WarnCodeWordCount,
			Severity: SeverityWarning,
			Field:    "words",
			Message:  fmt.Sprintf("expected %d words, found %d", ExpectedWords, len(doc.Words)),
		})
	}
}

// cueIssue converts a CUE error into an Issue, preferring a position
// inside the data file over one inside the schema.
func cueIssue(code, name string, err error) Issue {
	issue := Issue{Code: code, Severity: SeverityError, Message: err.Error()}

	var ce cueerrors.Error
	if e, ok := err.(cueerrors.Error); ok {
		ce = e
	} else if errs := cueerrors.Errors(err); len(errs) > 0 {
		ce = errs[0]
	}
	if ce == nil {
		return issue
	}

	format, args := ce.Msg()
	issue.Message = fmt.Sprintf(format, args...)
	path := ce.Path()
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	issue.Field = strings.Join(path, ".")

	for _, pos := range cueerrors.Positions(ce) {
		if pos.Filename() == name {
			issue.Line = pos.Line()
			break
		}
	}
	return issue
}

func lineOf(v cue.Value) int {
	if pos := v.Pos(); pos.IsValid() {
		return pos.Line()
	}
	return 0
}
