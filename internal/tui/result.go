package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"pulserun/internal/analysis"
)

// ResultModel is the calculation result screen model
type ResultModel struct {
	result    analysis.ZoneResult
	showChart bool
}

// NewResultModel creates a result screen for a calculation
func NewResultModel(result analysis.ZoneResult, showChart bool) ResultModel {
	return ResultModel{
		result:    result,
		showChart: showChart,
	}
}

// Init initializes the result screen
func (m ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// Result returns the displayed calculation
func (m ResultModel) Result() analysis.ZoneResult {
	return m.result
}

// View renders the result screen
func (m ResultModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Result"))
	sections = append(sections, RenderMetric("Recommended heart rate", fmt.Sprintf("%d bpm", m.result.RecommendedHR)))
	sections = append(sections, RenderMetric("Max heart rate", fmt.Sprintf("%d bpm", m.result.MaxHR)))
	sections = append(sections, "")
	sections = append(sections, m.renderZones())

	if warning := m.result.BoundaryWarning(); warning != "" {
		sections = append(sections, "", warningStyle.Render("Warning: "+warning))
	}

	if m.showChart {
		sections = append(sections, "", m.renderChart())
	}

	sections = append(sections, statusStyle.Render("Press esc or b to edit inputs"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ResultModel) renderZones() string {
	var lines []string
	lines = append(lines, sectionTitleStyle.Render("Training zones"))
	for _, z := range m.result.SortedZones() {
		lines = append(lines, RenderMetric(z.Label(), z.Range()))
	}
	return strings.Join(lines, "\n")
}

func (m ResultModel) renderChart() string {
	return asciigraph.Plot(m.result.Boundaries(),
		asciigraph.Height(8),
		asciigraph.Width(40),
		asciigraph.Precision(0),
		asciigraph.Caption("Zone boundaries (bpm)"),
	)
}
