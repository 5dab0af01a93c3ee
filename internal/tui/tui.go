package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/models"
	"github.com/tatianab/lifesim/internal/narrator"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateLoad
	stateLeaderboard
	stateCreate
	statePlaying
	stateBlackjack
	stateExam
	stateGameOver
)

// Deps are the services the TUI drives.
type Deps struct {
	Engine      *engine.Engine
	Store       models.SessionStore
	Leaderboard models.Leaderboard
	Narrator    narrator.Narrator
	Logger      *log.Logger

	// StepDelay paces dealer turns and exam feedback.
	StepDelay time.Duration
}

type model struct {
	deps Deps

	state     sessionState
	session   *models.GameSession
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   []string
	status    string
	err       error
	width     int
	height    int

	menu    menuModel
	create  createModel
	play    playModel
	table   tableModel
	exam    examModel
	leaders []models.LeaderboardEntry
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C"))
)

func NewModel(deps Deps) model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Narrator == nil {
		deps.Narrator = narrator.Plain{}
	}

	ti := textinput.New()
	ti.CharLimit = engine.MaxNameLength
	ti.Width = 40

	return model{
		deps:      deps,
		state:     stateMenu,
		textInput: ti,
		viewport:  viewport.New(60, 16),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// player is the state every engine call mutates.
func (m *model) player() *models.PlayerState {
	return &m.session.Player
}

type recapMsg struct {
	sessionID string
	index     int
	text      string
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.saveSession()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.6)
		m.viewport.Height = max(msg.Height-8, 5)
		m.viewport.SetContent(m.renderLog())
		return m, nil

	case recapMsg:
		if m.session != nil && m.session.ID.String() == msg.sessionID &&
			msg.index < len(m.session.History.Entries) {
			m.session.History.Entries[msg.index].Narrative = msg.text
			m.logLine(gameStyle.Italic(true).Render(msg.text))
		}
		return m, nil
	}

	switch m.state {
	case stateMenu, stateLoad, stateLeaderboard:
		return m.updateMenu(msg)
	case stateCreate:
		return m.updateCreate(msg)
	case statePlaying:
		return m.updatePlaying(msg)
	case stateBlackjack:
		return m.updateBlackjack(msg)
	case stateExam:
		return m.updateExam(msg)
	case stateGameOver:
		return m.updateGameOver(msg)
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateMenu, stateLoad, stateLeaderboard:
		s = m.viewMenu()
	case stateCreate:
		s = m.viewCreate()
	case statePlaying, stateBlackjack, stateExam:
		var panel string
		switch m.state {
		case stateBlackjack:
			panel = m.viewBlackjack()
		case stateExam:
			panel = m.viewExam()
		default:
			panel = m.viewSection()
		}
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left, panel, "", m.viewport.View()),
			m.renderState(),
		)
		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "", m.renderStatus())
	case stateGameOver:
		s = m.viewGameOver()
	}

	return "\n" + s + "\n"
}

func (m model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return helpStyle.Render(m.status)
	}
	return ""
}

func (m model) renderLog() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	for i, line := range m.gameLog {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
	}
	return b.String()
}

func (m *model) logLine(line string) {
	m.gameLog = append(m.gameLog, line)
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

// fail shows an engine or store error. Recoverable errors keep the game going.
func (m *model) fail(err error) {
	m.err = err
	m.status = ""
	var perr *models.PersistenceError
	if errors.As(err, &perr) {
		m.deps.Logger.Error("persistence", "op", perr.Op, "slot", perr.Slot, "err", perr.Err)
	}
}

func (m *model) notice(format string, args ...any) {
	m.err = nil
	m.status = fmt.Sprintf(format, args...)
}

// saveSession writes the session, keeping in-memory state on failure.
func (m *model) saveSession() bool {
	if m.session == nil || m.deps.Store == nil {
		return false
	}
	if err := m.deps.Store.Save(context.Background(), m.session); err != nil {
		m.fail(err)
		return false
	}
	return true
}

// applyTime logs closed years, queues their recaps and reacts to a pending
// test or a game over.
func (m *model) applyTime(res engine.TimeResult) tea.Cmd {
	var cmds []tea.Cmd
	p := m.player()
	for _, rep := range res.Years {
		events := rep.Events()
		m.session.History.Append(models.HistoryEntry{
			Age:     rep.Age,
			Events:  events,
			Health:  rep.Health.Health,
			Balance: p.Balance,
		})
		m.logLine(titleStyle.Render(fmt.Sprintf("Age %d", rep.Age)))
		for _, e := range events {
			m.logLine("  " + e)
		}
		cmds = append(cmds, m.recap(len(m.session.History.Entries)-1, *p, rep))
	}

	switch res.Pending {
	case engine.GateFinalExam:
		m.notice("Your final exam is due. Open Education and press e.")
	case engine.GateReview:
		m.notice("Your performance review is due. Open Career and press r.")
	}

	if p.GameOver {
		m.endGame()
		return tea.Batch(cmds...)
	}
	if len(res.Years) > 0 {
		m.saveSession()
	}
	return tea.Batch(cmds...)
}

func (m *model) recap(index int, p models.PlayerState, rep engine.YearReport) tea.Cmd {
	nar := m.deps.Narrator
	id := m.session.ID.String()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		text, err := nar.Recap(ctx, &p, rep)
		if err != nil || text == "" {
			return nil
		}
		return recapMsg{sessionID: id, index: index, text: text}
	}
}

// endGame records the finished life and shows the final screen.
func (m *model) endGame() {
	p := m.player()
	m.deps.Logger.Info("life ended", "player", p.Name, "age", p.Age, "net_worth", p.NetWorth())
	if m.deps.Leaderboard != nil {
		entry := models.NewLeaderboardEntry(p, time.Now().UTC())
		if err := m.deps.Leaderboard.Record(context.Background(), entry); err != nil {
			m.fail(err)
		}
	}
	m.saveSession()
	m.state = stateGameOver
}

func (m model) startSession(session *models.GameSession) model {
	m.session = session
	m.gameLog = nil
	m.err = nil
	m.play = playModel{}
	m.status = "Press l to live a while. Numbers open sections."
	for _, e := range session.History.Entries {
		m.gameLog = append(m.gameLog, titleStyle.Render(fmt.Sprintf("Age %d", e.Age)))
		if e.Narrative != "" {
			m.gameLog = append(m.gameLog, gameStyle.Italic(true).Render(e.Narrative))
		}
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()

	if session.Player.GameOver {
		m.state = stateGameOver
	} else {
		m.state = statePlaying
	}
	return m
}

func Run(deps Deps) error {
	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
