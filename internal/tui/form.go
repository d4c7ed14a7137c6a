package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"pulserun/internal/analysis"
	"pulserun/internal/health"
)

// formFocus identifies the focused form element
type formFocus int

const (
	focusAccess formFocus = iota
	focusAge
	focusRestingHR
	focusConfirm
	focusCount
)

// maxFieldLen fits a sign plus three digits
const maxFieldLen = 4

// FormModel is the input form screen model
type FormModel struct {
	provider health.Provider
	timeout  time.Duration

	age       textinput.Model
	restingHR textinput.Model
	focus     formFocus

	authorized bool
	requesting bool
	err        error
}

// accessResultMsg carries the completion of a health access request
type accessResultMsg struct {
	grant health.Grant
	err   error
}

// ZonesCalculatedMsg is sent when the form produced a result
type ZonesCalculatedMsg struct {
	Result analysis.ZoneResult
}

// NewFormModel creates a new form model
func NewFormModel(provider health.Provider, timeout time.Duration) FormModel {
	age := textinput.New()
	age.Placeholder = "e.g. 30"
	age.CharLimit = maxFieldLen
	age.Prompt = ""

	restingHR := textinput.New()
	restingHR.Placeholder = "e.g. 70"
	restingHR.CharLimit = maxFieldLen
	restingHR.Prompt = ""

	return FormModel{
		provider:  provider,
		timeout:   timeout,
		age:       age,
		restingHR: restingHR,
		focus:     focusAccess,
	}
}

// Init initializes the form screen
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Typing reports whether a text field has focus
func (m FormModel) Typing() bool {
	return m.focus == focusAge || m.focus == focusRestingHR
}

// Values returns the raw age and resting heart rate text
func (m FormModel) Values() (string, string) {
	return m.age.Value(), m.restingHR.Value()
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accessResultMsg:
		return m.handleAccessResult(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m.setFocus(m.step(1))
		case "shift+tab", "up":
			return m.setFocus(m.step(-1))
		case "enter":
			if m.focus == focusAccess {
				if m.requesting {
					return m, nil
				}
				m.requesting = true
				m.err = nil
				logrus.Debug("requesting health access")
				return m, m.requestAccess
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusAge:
		m.age, cmd = m.age.Update(msg)
	case focusRestingHR:
		m.restingHR, cmd = m.restingHR.Update(msg)
	}
	return m, cmd
}

func (m FormModel) requestAccess() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	grant, err := m.provider.RequestAccess(ctx)
	return accessResultMsg{grant: grant, err: err}
}

func (m FormModel) handleAccessResult(msg accessResultMsg) (FormModel, tea.Cmd) {
	m.requesting = false
	if msg.err != nil {
		logrus.WithError(msg.err).Warn("health access request failed")
		m.err = msg.err
		return m, nil
	}

	m.authorized = msg.grant.Granted
	if !m.authorized {
		logrus.Info("health access denied")
		return m, nil
	}

	logrus.WithFields(logrus.Fields{
		"age":        msg.grant.Reading.Age,
		"resting_hr": msg.grant.Reading.RestingHR,
	}).Info("health access granted")

	m.age.SetValue(strconv.Itoa(msg.grant.Reading.Age))
	m.restingHR.SetValue(strconv.Itoa(msg.grant.Reading.RestingHR))

	// The access button is gone once granted
	if m.focus == focusAccess {
		return m.setFocus(focusAge)
	}
	return m, nil
}

// submit validates the fields and emits the result. Invalid input leaves the
// fields as typed.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	result, err := analysis.Calculate(m.age.Value(), m.restingHR.Value())
	if err != nil {
		logrus.WithError(err).Debug("zone calculation rejected")
		m.err = err
		return m, nil
	}

	m.err = nil
	logrus.WithFields(logrus.Fields{
		"age":            result.Age,
		"resting_hr":     result.RestingHR,
		"recommended_hr": result.RecommendedHR,
		"monotonic":      result.Monotonic(),
	}).Info("zones calculated")

	return m, func() tea.Msg { return ZonesCalculatedMsg{Result: result} }
}

// step returns the next focus position in direction dir, skipping the
// access button once access was granted
func (m FormModel) step(dir int) formFocus {
	next := m.focus
	for {
		next = formFocus((int(next) + dir + int(focusCount)) % int(focusCount))
		if next != focusAccess || !m.authorized {
			return next
		}
	}
}

func (m FormModel) setFocus(f formFocus) (FormModel, tea.Cmd) {
	m.focus = f
	m.age.Blur()
	m.restingHR.Blur()

	switch f {
	case focusAge:
		return m, m.age.Focus()
	case focusRestingHR:
		return m, m.restingHR.Focus()
	}
	return m, nil
}

// View renders the form screen
func (m FormModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("PulseRun"))
	sections = append(sections, sectionTitleStyle.Render("Health data"))
	sections = append(sections, m.renderAccess())
	sections = append(sections, "")
	sections = append(sections, m.renderField("Age (years)", m.age, m.focus == focusAge))
	sections = append(sections, m.renderField("Resting heart rate", m.restingHR, m.focus == focusRestingHR))
	sections = append(sections, "")
	sections = append(sections, "  "+RenderButton("Confirm", m.focus == focusConfirm))

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("  "+m.errorText()))
	}

	sections = append(sections, statusStyle.Render("  tab/shift+tab to move, enter to select"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m FormModel) renderAccess() string {
	switch {
	case m.authorized:
		return successStyle.Render("  Health access granted.")
	case m.requesting:
		return helpDescStyle.Render("  Requesting health access...")
	default:
		return "  " + RenderButton("Request health access", m.focus == focusAccess)
	}
}

func (m FormModel) renderField(label string, input textinput.Model, focused bool) string {
	labelStyle := fieldLabelStyle
	if focused {
		labelStyle = fieldLabelFocusedStyle
	}
	return "  " + labelStyle.Render(label) + input.View()
}

func (m FormModel) errorText() string {
	if errors.Is(m.err, analysis.ErrInvalidInput) {
		return "Age and resting heart rate must be positive whole numbers"
	}
	return "Error: " + m.err.Error()
}
