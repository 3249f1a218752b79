package components

import (
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. The correct option is not
// known until Reveal, so the component can render a question whose
// answer stays with the engine.
type MultiChoice struct {
	Question     string
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
	Hidden       map[int]bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
		Hidden:       make(map[int]bool),
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles arrow navigation, number keys and enter. It marks the
// component submitted; the caller reads Chosen and evaluates.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Hidden[i] {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Options); i++ {
			if !m.Hidden[i] {
				m.Selected = i
				break
			}
		}
	case "enter":
		m.choose(m.Selected)
	case "1", "2", "3", "4", "5", "6":
		if i := int(key[0] - '1'); i < len(m.Options) && !m.Hidden[i] {
			m.Selected = i
			m.choose(i)
		}
	}

	return m, nil
}

func (m *MultiChoice) choose(i int) {
	if i < 0 || i >= len(m.Options) || m.Hidden[i] {
		return
	}
	m.Submitted = true
	m.ChosenIndex = i
}

// Chosen returns the submitted option, or "" before submission.
func (m MultiChoice) Chosen() string {
	if !m.Submitted || m.ChosenIndex < 0 {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Hide removes the given options from view. The selection moves to the
// first visible option when its own was hidden.
func (m *MultiChoice) Hide(options []string) {
	for i, opt := range m.Options {
		if slices.Contains(options, opt) {
			m.Hidden[i] = true
		}
	}
	if m.Hidden[m.Selected] {
		for i := range m.Options {
			if !m.Hidden[i] {
				m.Selected = i
				break
			}
		}
	}
}

// Reveal marks answer as the correct option and freezes the component.
func (m *MultiChoice) Reveal(answer string) {
	m.Submitted = true
	for i, opt := range m.Options {
		if opt == answer {
			m.CorrectIndex = i
		}
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		if m.Hidden[i] {
			continue
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
