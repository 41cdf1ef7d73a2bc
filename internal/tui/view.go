package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/words"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.mode {
	case ModeArchive:
		body = m.listView("All Words", "No words yet.")
	case ModeBookmarks:
		body = m.listView("Bookmarks", "No bookmarks yet. Press s on a word to save it.")
	default:
		body = m.wordView()
	}

	sections := []string{m.theme.Title.Render("Word of the Day"), body}
	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) wordView() string {
	t := m.theme
	now := m.clock.Now()

	w, ok := m.nav.Words().ByDate(m.date)
	if !ok {
		return t.Dim.Render("No words available.")
	}

	var b strings.Builder
	b.WriteString(t.Meta.Render(words.DisplayDate(w.Date)))
	b.WriteString("\n\n")

	if navigation.IsFuture(w, now) {
		b.WriteString(t.Word.Render("Coming Soon"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("This word will be revealed on %s. Check back then to discover a new word!",
			words.DisplayDate(w.Date)))
	} else {
		b.WriteString(m.card(w))
	}
	b.WriteString("\n\n")
	b.WriteString(m.navBar(now))
	return b.String()
}

func (m Model) card(w words.Word) string {
	t := m.theme

	var b strings.Builder
	heading := w.Word
	if m.store.Has(w.Date) {
		heading += " ★"
	}
	b.WriteString(t.Word.Render(heading))
	b.WriteString("\n")

	meta := []string{w.Pronunciation, w.PartOfSpeech}
	if w.Difficulty != "" {
		meta = append(meta, string(w.Difficulty))
	}
	b.WriteString(t.Meta.Render(strings.Join(nonEmpty(meta), " · ")))
	b.WriteString("\n\n")

	field := func(label, value string, style lipgloss.Style) {
		if value == "" {
			return
		}
		b.WriteString(t.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(style.Render(value))
		b.WriteString("\n\n")
	}
	plain := t.Renderer.NewStyle()
	field("Definition", w.Definition, plain)
	field("Example", w.Example, t.Example)
	field("Etymology", w.Etymology, plain)
	field("Synonyms", strings.Join(w.Synonyms, ", "), plain)
	if len(w.Tags) > 0 {
		field("Tags", strings.Join(w.Tags, ", "), t.Dim)
	}

	card := t.Card
	if m.width > 4 {
		card = card.Width(m.width - 4)
	}
	return card.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) navBar(now time.Time) string {
	t := m.theme
	n := m.nav.Around(m.date, now)

	prev := t.Dim.Render("← start")
	if n.Previous != nil {
		prev = "← " + n.Previous.Word
	}
	next := t.Dim.Render("latest →")
	switch {
	case n.ComingSoon:
		next = ""
	case n.Next != nil:
		next = n.Next.Word + " →"
	}
	if next == "" {
		return prev
	}
	return prev + "   " + next
}

func (m Model) listView(title, empty string) string {
	t := m.theme

	var b strings.Builder
	b.WriteString(t.Label.Render(fmt.Sprintf("%s (%d)", title, len(m.list))))
	b.WriteString("\n\n")
	if len(m.list) == 0 {
		b.WriteString(t.Dim.Render(empty))
		return b.String()
	}

	rows := make([]string, 0, len(m.list))
	for i, w := range m.list {
		row := fmt.Sprintf("%s  %s", w.Date, w.Word)
		if m.store.Has(w.Date) {
			row += " ★"
		}
		if i == m.cursor {
			rows = append(rows, t.Selected.Render(row))
		} else {
			rows = append(rows, t.Item.Render(row))
		}
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.copied:
		return m.theme.Status.Render("Copied!")
	case m.status != "":
		return m.theme.Dim.Render(m.status)
	}
	return ""
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
