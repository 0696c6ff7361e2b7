// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
)

// Row is one line of a list: a title, an optional muted detail below it,
// and a right-aligned value such as a price.
type Row struct {
	Key    string
	Title  string
	Detail string
	Value  string
}

// List displays rows in a navigable, filterable list.
type List struct {
	title    string
	rows     []Row
	visible  []int
	filter   string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a list component with the given header.
func New(s *styles.Styles, title string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		title:  title,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if n := len(l.visible); n > 0 {
				l.selected = n - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *List) View() string {
	header := l.title
	if l.filter != "" {
		header = fmt.Sprintf("%s (%d of %d matching %q)", l.title, len(l.visible), len(l.rows), l.filter)
	} else if len(l.rows) > 0 {
		header = fmt.Sprintf("%s (%d)", l.title, len(l.rows))
	}
	lines := []string{l.styles.Subtitle.Render(header), ""}

	if len(l.visible) == 0 {
		lines = append(lines, l.styles.Muted.Render("  Nothing to show"))
		return strings.Join(lines, "\n")
	}

	// Each row takes up to two lines
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}
	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.visible) {
		end = len(l.visible)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i == l.selected, l.rows[l.visible[i]]))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderRow(selected bool, row Row) string {
	indicator := "  "
	if selected {
		indicator = "> "
	}

	titleWidth := l.width - lipgloss.Width(row.Value) - 6
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := truncate(row.Title, titleWidth)

	var line string
	if selected {
		line = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, titleWidth, title, row.Value))
	} else {
		line = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, titleWidth, title)) +
			l.styles.Price.Render(row.Value)
	}
	if row.Detail != "" {
		line += "\n" + l.styles.Muted.Render("    "+truncate(row.Detail, l.width-6))
	}
	return line
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if limit < 4 || len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// SetRows replaces the rows and clears the selection. The filter is kept.
func (l *List) SetRows(rows []Row) {
	l.rows = rows
	l.selected = 0
	l.apply()
}

// SetFilter narrows the visible rows to titles containing text, ignoring case.
func (l *List) SetFilter(text string) {
	l.filter = strings.TrimSpace(text)
	l.selected = 0
	l.apply()
}

// Filter returns the active filter text.
func (l *List) Filter() string {
	return l.filter
}

func (l *List) apply() {
	l.visible = l.visible[:0]
	needle := strings.ToLower(l.filter)
	for i, row := range l.rows {
		if needle == "" || strings.Contains(strings.ToLower(row.Title), needle) {
			l.visible = append(l.visible, i)
		}
	}
}

// SelectedRow returns the highlighted row, or false when the list is empty.
func (l *List) SelectedRow() (Row, bool) {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return Row{}, false
	}
	return l.rows[l.visible[l.selected]], true
}

// Selected returns the index of the highlighted row among visible rows.
func (l *List) Selected() int {
	return l.selected
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of visible rows.
func (l *List) Count() int {
	return len(l.visible)
}

// IsEmpty returns whether no rows are visible.
func (l *List) IsEmpty() bool {
	return len(l.visible) == 0
}
