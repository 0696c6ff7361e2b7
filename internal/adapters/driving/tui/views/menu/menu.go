// Package menu provides the landing view of the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
)

// Entry is one destination reachable from the menu.
type Entry struct {
	Label    string
	Hint     string
	Shortcut string
	Target   messages.ViewType
	Exit     bool
}

func defaultEntries() []Entry {
	return []Entry{
		{Label: "Products", Hint: "price history per product, grouped by category", Shortcut: "p", Target: messages.ViewCategories},
		{Label: "Receipts", Hint: "browse and delete stored receipts", Shortcut: "r", Target: messages.ViewReceipts},
		{Label: "Settings", Hint: "storage backend and receipt extractor", Shortcut: "s", Target: messages.ViewSettings},
		{Label: "Help", Hint: "key bindings", Shortcut: "?", Target: messages.ViewHelp},
		{Label: "Quit", Shortcut: "q", Exit: true},
	}
}

// View is the menu model.
type View struct {
	styles  *styles.Styles
	keys    *keymap.KeyMap
	entries []Entry
	cursor  int
	width   int
	height  int
	ready   bool
}

// NewView creates the menu. A nil styles value falls back to the defaults.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		entries: defaultEntries(),
		width:   80,
		height:  24,
	}
}

// Init has nothing to load.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or opens the chosen entry.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *View) handleKey(k string) tea.Cmd {
	switch {
	case keymap.Matches(k, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return nil
	case keymap.Matches(k, v.keys.Down):
		if v.cursor < len(v.entries)-1 {
			v.cursor++
		}
		return nil
	case keymap.Matches(k, v.keys.Select):
		return v.open(v.entries[v.cursor])
	case k == "ctrl+c":
		return tea.Quit
	}

	for i, e := range v.entries {
		if e.Shortcut == k {
			v.cursor = i
			return v.open(e)
		}
	}
	return nil
}

func (v *View) open(e Entry) tea.Cmd {
	if e.Exit {
		return tea.Quit
	}
	target := e.Target
	return func() tea.Msg {
		return messages.ViewChanged{View: target}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Receipta"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Receipts and product prices"))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		marker, label := "  ", v.styles.Normal.Render(e.Label)
		if i == v.cursor {
			marker, label = "> ", v.styles.Subtitle.Render(e.Label)
		}
		line := fmt.Sprintf("%s[%s] %s", marker, e.Shortcut, label)
		if e.Hint != "" && v.width >= 60 {
			line += "  " + v.styles.Muted.Render(e.Hint)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Move  [Enter] Open  [p/r/s] Jump  [q] Quit"))
	return b.String()
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor position.
func (v *View) Selected() int {
	return v.cursor
}
