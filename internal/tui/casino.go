package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/lifesim/internal/engine"
)

type tableModel struct {
	round   *engine.BlackjackRound
	seq     int
	message string
}

type dealerTickMsg struct{ seq int }

func (m model) dealerTick() tea.Cmd {
	seq := m.table.seq
	return tea.Tick(m.deps.StepDelay, func(time.Time) tea.Msg { return dealerTickMsg{seq: seq} })
}

func (m model) beginBlackjack(round *engine.BlackjackRound) (tea.Model, tea.Cmd) {
	m.state = stateBlackjack
	m.table = tableModel{round: round, seq: m.table.seq + 1}
	return m.deal()
}

func (m model) deal() (tea.Model, tea.Cmd) {
	r := m.table.round
	if err := m.deps.Engine.Deal(r); err != nil {
		m.fail(err)
		return m, nil
	}
	m.err = nil
	m.table.message = fmt.Sprintf("Dealt. You have %d.", r.PlayerTotal())
	if r.Phase == engine.PhaseDealerTurn {
		m.table.message = "Twenty-one! The dealer plays."
		return m, m.dealerTick()
	}
	return m, nil
}

func (m model) updateBlackjack(msg tea.Msg) (tea.Model, tea.Cmd) {
	r := m.table.round

	switch msg := msg.(type) {
	case dealerTickMsg:
		if msg.seq != m.table.seq || r.Phase != engine.PhaseDealerTurn {
			return m, nil
		}
		stage, err := m.deps.Engine.DealerStep(r)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		switch stage {
		case engine.DealerRevealed:
			m.table.message = fmt.Sprintf("The dealer reveals %s.", r.Dealer[1])
		case engine.DealerHit:
			m.table.message = fmt.Sprintf("The dealer draws %s.", r.Dealer[len(r.Dealer)-1])
		case engine.DealerStood:
			return m.settle()
		}
		return m, m.dealerTick()

	case tea.KeyMsg:
		switch r.Phase {
		case engine.PhasePlayerTurn:
			switch msg.String() {
			case "h":
				c, err := m.deps.Engine.Hit(r)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.table.message = fmt.Sprintf("You draw %s. You have %d.", c, r.PlayerTotal())
				if r.Phase == engine.PhaseDealerTurn {
					return m, m.dealerTick()
				}
			case "s":
				if err := r.Stand(); err != nil {
					m.fail(err)
					return m, nil
				}
				m.table.message = fmt.Sprintf("You stand on %d.", r.PlayerTotal())
				return m, m.dealerTick()
			}

		case engine.PhaseResolved:
			switch msg.String() {
			case "n", "enter":
				if _, err := engine.NewRound(m.player(), r.Bet); err != nil {
					m.fail(err)
					return m, nil
				}
				r.Clear()
				m.table.seq++
				return m.deal()
			case "esc", "l":
				m.state = statePlaying
				m.play.section = sectionCasino
				return m, nil
			}
		}
	}
	return m, nil
}

func (m model) settle() (tea.Model, tea.Cmd) {
	r := m.table.round
	delta, err := m.deps.Engine.Settle(m.player(), r)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.table.message = r.Outcome.String()
	switch {
	case delta > 0:
		m.logLine(goodStyle.Render(fmt.Sprintf("Blackjack: won $%.0f.", delta)))
	case delta < 0:
		m.logLine(fmt.Sprintf("Blackjack: lost $%.0f.", -delta))
	default:
		m.logLine("Blackjack: push.")
	}
	m.saveSession()
	return m, nil
}

func renderHand(cards []engine.Card, hideSecond bool) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if hideSecond && i == 1 {
			parts[i] = "[??]"
			continue
		}
		parts[i] = "[" + c.String() + "]"
	}
	return strings.Join(parts, " ")
}

func (m model) viewBlackjack() string {
	r := m.table.round
	var b strings.Builder
	b.WriteString(titleStyle.Render("BLACKJACK") + "\n\n")
	b.WriteString(fmt.Sprintf("Bet: $%d\n\n", r.Bet))
	b.WriteString(fmt.Sprintf("Dealer (%d): %s\n", r.VisibleDealerTotal(), renderHand(r.Dealer, r.HoleHidden())))
	b.WriteString(fmt.Sprintf("You    (%d): %s\n\n", r.PlayerTotal(), renderHand(r.Player, false)))
	b.WriteString(gameStyle.Bold(true).Render(m.table.message) + "\n\n")

	switch r.Phase {
	case engine.PhasePlayerTurn:
		b.WriteString(helpStyle.Render("h to hit, s to stand"))
	case engine.PhaseDealerTurn:
		b.WriteString(helpStyle.Render("the dealer is playing..."))
	case engine.PhaseResolved:
		b.WriteString(helpStyle.Render("n to deal again, esc to leave the table"))
	}
	return b.String()
}
