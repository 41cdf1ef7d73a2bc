// Package tui is the interactive terminal browser for the word collection.
//
// The model mirrors the web page: one word at a time with previous and
// next movement gated on the clock, a random jump, an archive of every
// word, and the bookmark list. All time comparisons go through the
// injected Clock so the views are deterministic under test.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/wotd/internal/archive"
	"github.com/roach88/wotd/internal/bookmarks"
	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/rewrite"
	"github.com/roach88/wotd/internal/words"
)

// CopiedFor is how long the copy confirmation stays on screen.
const CopiedFor = 2 * time.Second

// Mode is the screen the model is showing.
type Mode int

const (
	ModeWord Mode = iota
	ModeArchive
	ModeBookmarks
)

func (m Mode) String() string {
	switch m {
	case ModeArchive:
		return "archive"
	case ModeBookmarks:
		return "bookmarks"
	default:
		return "word"
	}
}

// Options configures a Model. Zero values select the real clock, the
// system clipboard and the default renderer.
type Options struct {
	Clock    navigation.Clock
	BaseURL  string
	Copy     func(string) error
	Renderer *lipgloss.Renderer
}

type copiedMsg struct{ seq int }

type clearCopiedMsg struct{ seq int }

type copyFailedMsg struct{ err error }

// Model is the bubbletea model for the browser.
type Model struct {
	nav     *navigation.Resolver
	store   *bookmarks.Store
	clock   navigation.Clock
	baseURL string
	copy    func(string) error

	keys  keyMap
	help  help.Model
	theme Theme

	mode   Mode
	date   string
	list   []words.Word
	cursor int

	copied  bool
	copySeq int
	status  string
	width   int
}

// New creates a Model positioned on today's word.
func New(nav *navigation.Resolver, store *bookmarks.Store, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = navigation.SystemClock{}
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	m := Model{
		nav:     nav,
		store:   store,
		clock:   opts.Clock,
		baseURL: opts.BaseURL,
		copy:    opts.Copy,
		keys:    defaultKeyMap(),
		help:    help.New(),
		theme:   DefaultTheme(opts.Renderer),
	}
	if w, ok := nav.Words().Today(m.clock.Now()); ok {
		m.date = w.Date
	}
	return m
}

// Mode returns the current screen.
func (m Model) Mode() Mode { return m.mode }

// Date returns the date of the word on the word screen.
func (m Model) Date() string { return m.date }

// Cursor returns the selected row on a list screen.
func (m Model) Cursor() int { return m.cursor }

// Copied reports whether the copy confirmation is showing.
func (m Model) Copied() bool { return m.copied }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case copiedMsg:
		if msg.seq != m.copySeq {
			return m, nil
		}
		m.copied = true
		m.status = ""
		seq := msg.seq
		return m, tea.Tick(CopiedFor, func(time.Time) tea.Msg {
			return clearCopiedMsg{seq: seq}
		})

	case clearCopiedMsg:
		// A newer copy restarts the timer; only its own tick clears it.
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case copyFailedMsg:
		m.copied = false
		m.status = "Could not copy link: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Home):
		if w, ok := m.nav.Words().Today(now); ok {
			m.show(w.Date)
		}
		return m, nil
	case key.Matches(msg, m.keys.Archive):
		m.openList(ModeArchive, m.nav.Words().All())
		return m, nil
	case key.Matches(msg, m.keys.Saved):
		m.openList(ModeBookmarks, archive.BookmarkedVisible(m.nav.Words(), m.store.List(), now))
		return m, nil
	case key.Matches(msg, m.keys.Random):
		if w, ok := m.nav.PickRandomVisible(m.date, now); ok {
			m.show(w.Date)
		}
		return m, nil
	}

	if m.mode == ModeWord {
		return m.handleWordKey(msg, now)
	}
	return m.handleListKey(msg)
}

func (m Model) handleWordKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		if w, ok := m.nav.Previous(m.date); ok {
			m.show(w.Date)
		}
	case key.Matches(msg, m.keys.Next):
		if w, ok := m.nav.VisibleNext(m.date, now); ok {
			m.show(w.Date)
		}
	case key.Matches(msg, m.keys.Bookmark):
		if m.revealed(now) {
			m.store.Toggle(m.date)
		}
	case key.Matches(msg, m.keys.Copy):
		if m.revealed(now) {
			m.copySeq++
			return m, m.copyLink(m.copySeq)
		}
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.list) {
			m.show(m.list[m.cursor].Date)
		}
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeWord
	}
	return m, nil
}

func (m *Model) show(date string) {
	m.mode = ModeWord
	m.date = date
	m.copied = false
	m.status = ""
}

// openList switches to a list screen with the cursor on the current word
// when it is listed.
func (m *Model) openList(mode Mode, list []words.Word) {
	m.mode = mode
	m.list = list
	m.cursor = 0
	for i, w := range list {
		if w.Date == m.date {
			m.cursor = i
			break
		}
	}
}

// revealed reports whether the current word exists and is not withheld.
func (m Model) revealed(now time.Time) bool {
	w, ok := m.nav.Words().ByDate(m.date)
	return ok && navigation.Visible(w, now)
}

func (m Model) copyLink(seq int) tea.Cmd {
	link := rewrite.PageURL(m.baseURL, m.date)
	copyFn := m.copy
	return func() tea.Msg {
		if err := copyFn(link); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{seq: seq}
	}
}

// Run starts an interactive program on the alternate screen and blocks
// until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
