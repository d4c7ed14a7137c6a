package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	formSection := m.renderSection("Form", []keyHelp{
		{"tab / down", "Next field"},
		{"shift+tab / up", "Previous field"},
		{"enter", "Request access on the access button, otherwise confirm"},
	})
	sections = append(sections, formSection)

	resultSection := m.renderSection("Result", []keyHelp{
		{"esc / b", "Back to the form"},
	})
	sections = append(sections, resultSection)

	globalSection := m.renderSection("Anywhere", []keyHelp{
		{"?", "Help (this screen, not while typing)"},
		{"q", "Quit (not while typing)"},
		{"ctrl+c", "Quit"},
		{"esc", "Close help"},
	})
	sections = append(sections, globalSection)

	sections = append(sections, m.renderZonesHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitleStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderZonesHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitleStyle.Render("Zones Explained"))
	lines = append(lines, "")

	zones := []struct {
		name string
		desc string
	}{
		{"Max HR", "220 - age."},
		{"Recommended HR", "Midpoint of resting and max HR."},
		{"Zone 1", "Resting HR up to 60% of max HR."},
		{"Zone 2", "60-70% of max HR."},
		{"Zone 3", "70-80% of max HR."},
		{"Zone 4", "80-90% of max HR."},
		{"Zone 5", "90% of max HR up to max HR."},
	}

	for _, z := range zones {
		lines = append(lines, "  "+helpKeyStyle.Render(z.name))
		lines = append(lines, "  "+helpDescStyle.Render(z.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
