package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tatianab/lifesim/internal/models"
)

const leaderboardSize = 10

var menuItems = []string{"New life", "Load life", "Leaderboard", "Quit"}

type menuModel struct {
	cursor int
	slots  []models.SlotInfo
}

func (m model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.state {
	case stateLeaderboard:
		m.state = stateMenu
		return m, nil

	case stateLoad:
		switch key.String() {
		case "esc":
			m.state = stateMenu
			m.menu.cursor = 0
		case "up", "k":
			m.menu.cursor = max(m.menu.cursor-1, 0)
		case "down", "j":
			m.menu.cursor = min(m.menu.cursor+1, max(len(m.menu.slots)-1, 0))
		case "enter":
			if len(m.menu.slots) == 0 {
				return m, nil
			}
			slot := m.menu.slots[m.menu.cursor].Slot
			session, err := m.deps.Store.Load(context.Background(), slot)
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.deps.Logger.Info("loaded", "slot", slot, "player", session.Player.Name)
			return m.startSession(session), nil
		}
		return m, nil
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.menu.cursor = max(m.menu.cursor-1, 0)
	case "down", "j":
		m.menu.cursor = min(m.menu.cursor+1, len(menuItems)-1)
	case "enter":
		m.err = nil
		switch m.menu.cursor {
		case 0:
			return m.beginCreate(), textinput.Blink
		case 1:
			slots, err := m.deps.Store.List(context.Background())
			if err != nil {
				m.fail(err)
				return m, nil
			}
			m.menu.slots = slots
			m.menu.cursor = 0
			m.state = stateLoad
		case 2:
			if m.deps.Leaderboard == nil {
				m.leaders = nil
			} else {
				leaders, err := m.deps.Leaderboard.Top(context.Background(), leaderboardSize)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.leaders = leaders
			}
			m.state = stateLeaderboard
		case 3:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LIFESIM") + "\n\n")

	switch m.state {
	case stateLoad:
		b.WriteString("Choose a saved life:\n\n")
		if len(m.menu.slots) == 0 {
			b.WriteString(helpStyle.Render("No saved lives yet.") + "\n")
		}
		for i, s := range m.menu.slots {
			line := fmt.Sprintf("%s, age %d (%s)", s.Name, s.Age, s.Slot)
			if !s.SavedAt.IsZero() {
				line += "  saved " + s.SavedAt.Local().Format("Jan 2 15:04")
			}
			b.WriteString(cursorLine(i == m.menu.cursor, line) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("enter to load, esc to go back"))

	case stateLeaderboard:
		b.WriteString(renderLeaderboard(m.leaders) + "\n\n")
		b.WriteString(helpStyle.Render("press any key to go back"))

	default:
		for i, item := range menuItems {
			b.WriteString(cursorLine(i == m.menu.cursor, item) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("up/down to move, enter to choose"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	return b.String()
}

func cursorLine(selected bool, text string) string {
	if selected {
		return userStyle.Render("> " + text)
	}
	return "  " + text
}

func renderLeaderboard(entries []models.LeaderboardEntry) string {
	if len(entries) == 0 {
		return helpStyle.Render("No finished lives yet.")
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		major := string(e.Major)
		if major == "" {
			major = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Age),
			major,
			fmt.Sprintf("$%.2f", e.NetWorth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers("#", "Name", "Age", "Major", "Net worth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Underline(false)
			}
			return gameStyle
		})
	return t.Render()
}
