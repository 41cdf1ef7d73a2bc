package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/roach88/wotd/internal/archive"
	"github.com/roach88/wotd/internal/bookmarks"
	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/rewrite"
	"github.com/roach88/wotd/internal/words"
)

// Error codes in JSON error bodies.
const (
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"
	codeNoWords    = "no_visible_words"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WordPage is the response for a single word. A withheld future word
// has Word unset, ComingSoon true, Date set to the reveal day and only
// Previous navigation.
type WordPage struct {
	Word       *words.Word `json:"word,omitempty"`
	Date       string      `json:"date"`
	Previous   *words.Word `json:"previous,omitempty"`
	Next       *words.Word `json:"next,omitempty"`
	ComingSoon bool        `json:"coming_soon"`
	Bookmarked bool        `json:"bookmarked"`
	ShareURL   string      `json:"share_url,omitempty"`
}

// WordList is the archive response.
type WordList struct {
	Words  []words.Word   `json:"words"`
	Shown  int            `json:"shown"`
	Total  int            `json:"total"`
	Filter archive.Filter `json:"filter"`
}

// BookmarkList is the bookmarks page response.
type BookmarkList struct {
	Dates []string     `json:"dates"`
	Words []words.Word `json:"words"`
}

// BookmarkState is the membership of one date.
type BookmarkState struct {
	Date       string `json:"date"`
	Bookmarked bool   `json:"bookmarked"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"words":  s.Collection().Len(),
	})
}

func (s *Server) page(snap *snapshot, w words.Word) WordPage {
	return NewWordPage(snap.nav, s.bookmarks, w, s.opts.Clock.Now(), s.opts.BaseURL)
}

// NewWordPage resolves the page for w at time now. baseURL may be empty,
// in which case no share link is set.
func NewWordPage(nav *navigation.Resolver, store *bookmarks.Store, w words.Word, now time.Time, baseURL string) WordPage {
	n := nav.Around(w.Date, now)
	p := WordPage{
		Date:       w.Date,
		Previous:   n.Previous,
		Next:       n.Next,
		ComingSoon: n.ComingSoon,
		Bookmarked: store.Has(w.Date),
	}
	if !n.ComingSoon {
		p.Word = &w
		if baseURL != "" {
			p.ShareURL = rewrite.PageURL(baseURL, w.Date)
		}
	}
	return p
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	snap := s.current.Load()
	today, ok := snap.words.Today(s.opts.Clock.Now())
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "no words loaded")
		return
	}
	writeJSON(w, http.StatusOK, s.page(snap, today))
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	snap := s.current.Load()
	word, ok := snap.words.BySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "no word for "+slug)
		return
	}
	writeJSON(w, http.StatusOK, s.page(snap, word))
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := archive.Filter{
		Query:        q.Get("q"),
		Difficulty:   q.Get("difficulty"),
		PartOfSpeech: q.Get("pos"),
	}
	if err := validate.Struct(f); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "difficulty must be all, beginner, intermediate or advanced")
		return
	}

	all := s.Collection().All()
	found := archive.Search(all, f)
	writeJSON(w, http.StatusOK, WordList{
		Words:  found,
		Shown:  len(found),
		Total:  len(all),
		Filter: f,
	})
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	exclude := r.URL.Query().Get("exclude")
	snap := s.current.Load()
	word, ok := snap.nav.PickRandomVisible(exclude, s.opts.Clock.Now())
	if !ok {
		writeError(w, http.StatusNotFound, codeNoWords, "no other word is available yet")
		return
	}
	writeJSON(w, http.StatusOK, s.page(snap, word))
}

func (s *Server) handleSlugs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"slugs": s.Collection().Slugs()})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, archive.Facets(s.Collection().All()))
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	dates := s.bookmarks.List()
	writeJSON(w, http.StatusOK, BookmarkList{
		Dates: dates,
		Words: archive.BookmarkedVisible(s.Collection(), dates, s.opts.Clock.Now()),
	})
}

func (s *Server) handleClearBookmarks(w http.ResponseWriter, r *http.Request) {
	s.bookmarks.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// dateParam reads and checks the {date} path parameter.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := chi.URLParam(r, "date")
	if err := validate.Var(date, "len=8,numeric"); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "date must be YYYYMMDD")
		return "", false
	}
	return date, true
}

func (s *Server) handleBookmark(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, BookmarkState{Date: date, Bookmarked: s.bookmarks.Has(date)})
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	on := s.bookmarks.Toggle(date)
	state := "removed"
	if on {
		state = "added"
	}
	s.metrics.BookmarkToggles.WithLabelValues(state).Inc()
	writeJSON(w, http.StatusOK, BookmarkState{Date: date, Bookmarked: on})
}
