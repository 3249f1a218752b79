// Package app hosts the root Bubble Tea model: the screen router framed by
// the header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/screens/home"
	"github.com/abhisek/quizionix/internal/screens/quest"
	sessionscreen "github.com/abhisek/quizionix/internal/screens/session"
	"github.com/abhisek/quizionix/internal/screens/welcome"
	"github.com/abhisek/quizionix/internal/ui/layout"
)

// Start screens.
const (
	StartHome = "home"
	StartQuiz = "quiz"
	StartZone = "zone"
)

// Options configures the TUI.
type Options struct {
	Services *screen.Services

	// Start selects the first screen: StartHome (with the splash),
	// StartQuiz or StartZone.
	Start string

	// Quiz presets the quiz started by StartQuiz.
	Quiz quiz.Options
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *screen.Services
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model with the start screen below home, so
// leaving a directly started quiz or quest lands on the home screen.
func newAppModel(opts Options) AppModel {
	svc := opts.Services
	homeScreen := home.New(svc)

	var r *router.Router
	switch opts.Start {
	case StartQuiz:
		r = router.New(homeScreen)
		r.Push(sessionscreen.New(svc, opts.Quiz))
	case StartZone:
		r = router.New(homeScreen)
		r.Push(quest.New(svc))
	default:
		r = router.New(welcome.New(func() screen.Screen { return homeScreen }))
	}
	return AppModel{svc: svc, router: r}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens handle esc themselves; the quiz asks before quitting.
		if msg.String() == "ctrl+c" {
			if m.svc.Quiz != nil {
				m.svc.Quiz.Abandon()
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.svc.Users.Progression()
	header := layout.RenderHeader(title, p.TotalXP, p.TotalCoins, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
