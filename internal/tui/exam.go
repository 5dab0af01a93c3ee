package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/lifesim/internal/engine"
)

type examModel struct {
	session  *engine.ExamSession
	feedback string
	waiting  bool
}

type examNextMsg struct{}

func (m model) beginExam(s *engine.ExamSession) model {
	m.state = stateExam
	m.err = nil
	m.exam = examModel{session: s}
	return m
}

func (m model) updateExam(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.exam.session

	switch msg := msg.(type) {
	case examNextMsg:
		m.exam.waiting = false
		m.exam.feedback = ""
		if s.Done() {
			return m.finishExam()
		}
		return m, nil

	case tea.KeyMsg:
		if m.exam.waiting {
			return m, nil
		}
		q, ok := s.Current()
		if !ok {
			return m, nil
		}
		n, err := strconv.Atoi(msg.String())
		if err != nil || n < 1 || n > len(q.Choices) {
			return m, nil
		}
		correct, err := s.Answer(q.Choices[n-1])
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if correct {
			m.exam.feedback = goodStyle.Render("Correct!")
		} else {
			m.exam.feedback = errorStyle.Render("Wrong. The answer was " + q.Correct + ".")
		}
		m.exam.waiting = true
		return m, tea.Tick(m.deps.StepDelay, func(time.Time) tea.Msg { return examNextMsg{} })
	}
	return m, nil
}

func (m model) finishExam() (tea.Model, tea.Cmd) {
	s := m.exam.session
	m.state = statePlaying
	m.play.section = sectionEducation

	var (
		res engine.ExamResult
		err error
	)
	if s.Kind == engine.FinalExam {
		res, err = m.deps.Engine.ResolveFinalExam(m.player(), s)
	} else {
		res, err = m.deps.Engine.ResolveEntranceExam(m.player(), s)
	}
	if err != nil {
		m.fail(err)
		return m, nil
	}

	m.logLine(fmt.Sprintf("Your %s: %d of %d correct.", s.Kind, res.Score, res.Total))
	if res.Passed {
		m.logLine(goodStyle.Render(res.Message))
	} else {
		m.logLine(res.Message)
	}
	m.notice(res.Message)

	cmd := m.applyTime(res.Time)
	if s.Kind == engine.EntranceExam {
		m.saveSession()
	}
	return m, cmd
}

func (m model) viewExam() string {
	s := m.exam.session
	var b strings.Builder
	title := strings.ToUpper(s.Kind.String())
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", title, s.Major)) + "\n\n")

	if q, ok := s.Current(); ok && !m.exam.waiting {
		b.WriteString(fmt.Sprintf("Question %d of %d\n\n%s\n\n", s.Index+1, len(s.Questions), q.Prompt))
		for i, c := range q.Choices {
			b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, c))
		}
		b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("You need %d correct to pass.", s.PassThreshold)))
	} else {
		b.WriteString(m.exam.feedback + "\n")
	}
	return b.String()
}
