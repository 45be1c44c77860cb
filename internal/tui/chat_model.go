package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/nathfavour/blubot/pkg/surface"
)

var (
	// Colors
	blue  = lipgloss.Color("#3B82F6")
	green = lipgloss.Color("#04B575")
	gray  = lipgloss.Color("#626262")
	white = lipgloss.Color("#FAFAFA")

	// Styles
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Background(blue).
			Padding(0, 1).
			MarginBottom(1)

	styleUser = lipgloss.NewStyle().
			Bold(true).
			Foreground(green)

	styleBot = lipgloss.NewStyle().
			Bold(true).
			Foreground(blue)

	styleTyping = lipgloss.NewStyle().
			Italic(true).
			Foreground(gray)

	styleFooter = lipgloss.NewStyle().
			Foreground(gray).
			MarginTop(1)
)

const SurfaceName = "tui"

// Matcher answers utterances. *responder.Responder satisfies it.
type Matcher interface {
	Match(utterance string) responder.Match
}

type replyMsg struct {
	id   string
	text string
}

type Model struct {
	matcher  Matcher
	pacer    *surface.Pacer
	labels   surface.Labels
	recorder stats.Recorder

	input    textinput.Model
	viewport viewport.Model
	lines    []surface.Line
	pending  map[string]bool
	width    int
	height   int
	ready    bool
}

// NewModel builds the chat model. A nil recorder disables statistics.
func NewModel(m Matcher, pacer *surface.Pacer, labels surface.Labels, rec stats.Recorder) Model {
	if rec == nil {
		rec = stats.Discard
	}

	in := textinput.New()
	in.Placeholder = "Type a message..."
	in.Prompt = "› "
	in.CharLimit = 500
	in.Focus()

	return Model{
		matcher:  m,
		pacer:    pacer,
		labels:   labels,
		recorder: rec,
		input:    in,
		viewport: viewport.New(80, 20),
		pending:  make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case replyMsg:
		if !m.pending[msg.id] {
			return m, nil
		}
		delete(m.pending, msg.id)
		m.lines = append(m.lines, m.labels.BotLine(msg.text))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the current input to the responder and schedules the reply
// after the pacer delay. Each submission is tracked on its own so rapid
// messages all get answered.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text, ok := surface.Admit(m.input.Value())
	m.input.Reset()
	if !ok {
		return m, nil
	}

	m.lines = append(m.lines, m.labels.UserLine(text))
	match := m.matcher.Match(text)
	if err := m.recorder.Record(SurfaceName, match); err != nil {
		slog.Debug("failed to record match", "error", err)
	}

	id := uuid.NewString()
	m.pending[id] = true
	m.refresh()

	reply := match.Reply
	return m, tea.Tick(m.pacer.Delay(), func(time.Time) tea.Msg {
		return replyMsg{id: id, text: reply}
	})
}

func (m *Model) refresh() {
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		label := styleUser.Render(l.Sender + ":")
		if l.FromBot {
			label = styleBot.Render(l.Sender + ":")
		}
		line := label + " " + l.Text
		if m.width > 0 {
			line = lipgloss.NewStyle().Width(m.width).Render(line)
		}
		b.WriteString(line)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Transcript returns the rendered conversation lines in order.
func (m Model) Transcript() []surface.Line {
	return append([]surface.Line(nil), m.lines...)
}

func (m Model) View() string {
	if !m.ready {
		return "Starting chat..."
	}

	header := styleHeader.Render(fmt.Sprintf("💬 %s", m.labels.Bot))

	typing := ""
	if len(m.pending) > 0 {
		typing = styleTyping.Render(fmt.Sprintf("%s is typing...", m.labels.Bot))
	}

	footer := styleFooter.Render("[enter] Send • [pgup/pgdn] Scroll • [esc] Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		typing,
		m.input.View(),
		footer,
	)
}
