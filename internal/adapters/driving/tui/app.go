package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/categories"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/products"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/receipts"
	"github.com/custodia-labs/receipta/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView       *menu.View
	categoriesView *categories.View
	productsView   *products.View
	historyView    *history.View
	receiptsView   *receipts.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	user := ports.user()
	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		categoriesView: categories.NewView(s, ports.Analysis, user),
		productsView:   products.NewView(s, ports.Analysis, user),
		historyView:    history.NewView(s, ports.Analysis, user),
		receiptsView:   receipts.NewView(s, ports.Receipt, user),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("receipta - Product Prices"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCategories:
			return a, a.categoriesView.Init()
		case messages.ViewReceipts:
			return a, a.receiptsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewProducts, messages.ViewHistory:
			// Products and history keep their loaded state when returned to
		}
		return a, nil

	case messages.CategorySelected:
		a.currentView = messages.ViewProducts
		return a, a.productsView.SetCategory(msg.Category)

	case messages.ProductSelected:
		a.currentView = messages.ViewHistory
		return a, a.historyView.SetProduct(msg.Category, msg.Label)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
		a.err = a.categoriesView.Err()
	case messages.ViewProducts:
		a.productsView, cmd = a.productsView.Update(msg)
		a.err = a.productsView.Err()
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
		a.err = a.historyView.Err()
	case messages.ViewReceipts:
		a.receiptsView, cmd = a.receiptsView.Update(msg)
		a.err = a.receiptsView.Err()
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
		a.err = a.settingsView.Err()
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCategories:
		return a.categoriesView.View()
	case messages.ViewProducts:
		return a.productsView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewReceipts:
		return a.receiptsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Lists:
  j/k, ↑/↓    Move
  g/G         First / last
  enter       Open
  r           Reload

Products:
  /           Filter by name
  enter       Show price history

Receipts:
  enter       Show line items
  d           Delete (confirm with y)

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and forwards them to every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.categoriesView.SetDimensions(width, height)
	a.productsView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.receiptsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
