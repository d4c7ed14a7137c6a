package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulserun/internal/config"
	"pulserun/internal/health"
)

// Screen identifiers
type Screen int

const (
	ScreenForm Screen = iota
	ScreenResult
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	form   FormModel
	result ResultModel
	help   HelpModel

	display config.DisplayConfig

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(provider health.Provider, requestTimeout time.Duration, display config.DisplayConfig) *App {
	return &App{
		screen:  ScreenForm,
		form:    NewFormModel(provider, requestTimeout),
		help:    NewHelpModel(),
		display: display,
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Global keybindings (unless typing into a field)
		if a.screen != ScreenForm || !a.form.Typing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
				}
				return a, nil
			case "esc", "b":
				switch a.screen {
				case ScreenHelp:
					a.screen = a.prevScreen
					return a, nil
				case ScreenResult:
					// Revisiting the form discards the result
					a.screen = ScreenForm
					a.result = ResultModel{}
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case accessResultMsg:
		// The form owns the access state whichever screen is showing
		m, cmd := a.form.Update(msg)
		a.form = m.(FormModel)
		return a, cmd

	case ZonesCalculatedMsg:
		a.result = NewResultModel(msg.Result, a.display.ShowChart)
		a.screen = ScreenResult
		return a, a.result.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenForm:
		var m tea.Model
		m, cmd = a.form.Update(msg)
		a.form = m.(FormModel)
	case ScreenResult:
		var m tea.Model
		m, cmd = a.result.Update(msg)
		a.result = m.(ResultModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenForm:
		content = a.form.View()
	case ScreenResult:
		content = a.result.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("PulseRun Heart Rate Zones")
}

func (a *App) renderNav() string {
	items := []struct {
		label  string
		screen Screen
	}{
		{"Input", ScreenForm},
		{"Result", ScreenResult},
		{"Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		if a.screen == item.screen {
			nav += navActiveStyle.Render(item.label)
		} else {
			nav += navInactiveStyle.Render(item.label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[?] Help  [q] Quit")

	return navStyle.Render(nav)
}
