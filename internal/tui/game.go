package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/models"
)

type section int

const (
	sectionMain section = iota
	sectionFinance
	sectionEducation
	sectionCareer
	sectionCity
	sectionCasino
)

var sectionNames = map[section]string{
	sectionMain:      "HOME",
	sectionFinance:   "FINANCES",
	sectionEducation: "EDUCATION",
	sectionCareer:    "CAREER",
	sectionCity:      "CITY",
	sectionCasino:    "CASINO",
}

type promptKind int

const (
	promptNone promptKind = iota
	promptStock
	promptBet
)

type playModel struct {
	section section
	prompt  promptKind
}

func (m model) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.play.prompt != promptNone {
		return m.updatePrompt(msg)
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	k := key.String()

	if m.play.section != sectionMain && (k == "esc" || k == "backspace") {
		m.play.section = sectionMain
		m.err = nil
		return m, nil
	}

	switch m.play.section {
	case sectionMain:
		return m.updateMain(k)
	case sectionFinance:
		return m.updateFinance(k)
	case sectionEducation:
		return m.updateEducation(k)
	case sectionCareer:
		return m.updateCareer(k)
	case sectionCity:
		return m.updateCity(k)
	case sectionCasino:
		if k == "b" {
			return m.openPrompt(promptBet, "Bet amount")
		}
	}
	return m, nil
}

func (m model) updateMain(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(k)
		m.play.section = section(n)
		m.err = nil
		m.status = ""
	case "l", " ":
		res, err := m.deps.Engine.AdvanceTime(m.player(), engine.TurnLength)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.notice("Time passes.")
		return m, m.applyTime(res)
	case "s":
		if m.saveSession() {
			m.notice("Saved to slot %s.", m.session.Slot)
		}
	case "q":
		if m.saveSession() {
			m.menu.cursor = 0
			m.state = stateMenu
			m.session = nil
		}
	}
	return m, nil
}

func (m model) updateFinance(k string) (tea.Model, tea.Cmd) {
	eng, p := m.deps.Engine, m.player()
	switch k {
	case "a":
		offer, err := eng.AcceptLoan(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Borrowed $%.2f at %.0f%%.", offer.Amount, offer.Rate*100))
		m.notice("Loan accepted.")
	case "r":
		paid, err := eng.RepayLoan(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Repaid the loan: $%.2f.", paid))
		m.notice("Loan repaid.")
	case "t":
		paid, err := eng.PayTuition(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Paid $%.2f toward tuition.", paid))
		m.notice("$%.2f of college debt left.", p.CollegeDebt)
	case "b":
		return m.openPrompt(promptStock, "Amount to invest")
	case "x":
		amount, err := eng.SellStock(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Sold stocks for $%.2f.", amount))
		m.notice("Stocks sold.")
	}
	return m, nil
}

func (m model) updateEducation(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "1", "2", "3":
		n, _ := strconv.Atoi(k)
		major := models.Majors[n-1]
		s, err := m.deps.Engine.StartEntranceExam(m.player(), major)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		return m.beginExam(s), nil
	case "e":
		s, err := m.deps.Engine.StartFinalExam(m.player())
		if err != nil {
			m.fail(err)
			return m, nil
		}
		return m.beginExam(s), nil
	}
	return m, nil
}

func (m model) updateCareer(k string) (tea.Model, tea.Cmd) {
	eng, p := m.deps.Engine, m.player()
	switch k {
	case "r":
		res, err := eng.PerformanceReview(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(res.Message)
		m.notice(res.Message)
		return m, m.applyTime(res.Time)
	case "u":
		if err := eng.QuitJob(p); err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine("You quit your job.")
		m.notice("Unemployed.")
	default:
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 || n > len(engine.Jobs) {
			return m, nil
		}
		job, err := eng.TakeJob(p, engine.Jobs[n-1].Title)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Hired as %s for $%.0f a year.", job.Title, job.Salary))
		m.notice("Welcome aboard.")
	}
	return m, nil
}

func (m model) updateCity(k string) (tea.Model, tea.Cmd) {
	eng, p := m.deps.Engine, m.player()
	switch k {
	case "d":
		c, err := eng.VisitDoctor(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("The doctor charged $%.0f. %s", c.Fee, c.Advice))
		m.notice(c.Advice)
		return m, m.applyTime(c.Time)
	case "v":
		v, err := eng.TakeVacation(p)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("%s and shed %.0f stress.", v.Destination, v.Relief))
		m.notice("Welcome back.")
		return m, m.applyTime(v.Time)
	}
	return m, nil
}

func (m model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.play.prompt = kind
	m.err = nil
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	m.textInput.Focus()
	return m, nil
}

func (m model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.play.prompt = promptNone
			m.textInput.Blur()
			return m, nil
		case tea.KeyEnter:
			return m.submitPrompt(strings.TrimSpace(m.textInput.Value()))
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) submitPrompt(value string) (tea.Model, tea.Cmd) {
	kind := m.play.prompt
	p := m.player()

	switch kind {
	case promptStock:
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.fail(fmt.Errorf("%q is not an amount", value))
			return m, nil
		}
		if err := m.deps.Engine.BuyStock(p, amount); err != nil {
			m.fail(err)
			return m, nil
		}
		m.logLine(fmt.Sprintf("Invested $%.2f in stocks.", amount))
		m.notice("Stocks bought.")

	case promptBet:
		bet, err := strconv.Atoi(value)
		if err != nil {
			m.fail(fmt.Errorf("%q is not a whole-dollar bet", value))
			return m, nil
		}
		round, err := engine.NewRound(p, bet)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.play.prompt = promptNone
		m.textInput.Blur()
		return m.beginBlackjack(round)
	}

	m.play.prompt = promptNone
	m.textInput.Blur()
	return m, nil
}

func (m model) viewSection() string {
	p := m.player()
	var b strings.Builder
	b.WriteString(titleStyle.Render(sectionNames[m.play.section]) + "\n\n")

	item := func(key, text string) { b.WriteString(fmt.Sprintf("[%s] %s\n", key, text)) }

	switch m.play.section {
	case sectionMain:
		item("l", fmt.Sprintf("Live a while (%d time)", engine.TurnLength))
		item("1", "Finances")
		item("2", "Education")
		item("3", "Career")
		item("4", "City")
		item("5", "Casino")
		item("s", "Save")
		item("q", "Save and return to menu")

	case sectionFinance:
		offer := engine.QualifyLoan(p.Balance)
		if p.HasLoan {
			item("r", fmt.Sprintf("Repay loan ($%.2f)", p.Debt))
		} else {
			item("a", fmt.Sprintf("Take a loan of $%.2f at %.0f%%", offer.Amount, offer.Rate*100))
		}
		item("t", fmt.Sprintf("Pay $%d toward tuition", engine.TuitionPayment))
		item("b", "Buy stocks")
		item("x", "Sell all stocks")

	case sectionEducation:
		switch {
		case p.IsEnrolled && p.IsTestTime:
			item("e", fmt.Sprintf("Take the Year %d final exam", p.CollegeYear))
		case p.IsEnrolled:
			b.WriteString(fmt.Sprintf("Year %d of %s. Finals come at the end of the year.\n", p.CollegeYear, p.CollegeMajor))
		case p.IsGraduate:
			b.WriteString(fmt.Sprintf("You hold a degree in %s.\n", p.CollegeMajor))
		default:
			for i, major := range models.Majors {
				item(strconv.Itoa(i+1), fmt.Sprintf("Entrance exam for %s", major))
			}
		}

	case sectionCareer:
		for i, j := range engine.Jobs {
			text := fmt.Sprintf("%s, $%.0f", j.Title, j.Salary)
			if j.Degree != models.MajorNone {
				text += fmt.Sprintf(" (needs %s)", j.Degree)
			}
			item(strconv.Itoa(i+1), text)
		}
		if p.IsEmployed {
			item("u", "Quit job")
		}
		if p.IsEmployed && p.IsTestTime && !p.IsEnrolled {
			item("r", "Sit the performance review")
		}

	case sectionCity:
		fee, _ := engine.ConsultationFee(p.Health)
		item("d", fmt.Sprintf("See the doctor ($%.0f)", fee))
		item("v", fmt.Sprintf("Take a vacation ($%d)", engine.VacationCost))

	case sectionCasino:
		item("b", "Sit down at the blackjack table")
	}

	if m.play.section != sectionMain {
		b.WriteString("\n" + helpStyle.Render("esc to go back"))
	}
	if m.play.prompt != promptNone {
		b.WriteString("\n\n" + m.textInput.View() + "\n" + helpStyle.Render("enter to confirm, esc to cancel"))
	}
	return b.String()
}

func (m model) renderState() string {
	if m.session == nil {
		return ""
	}
	p := m.player()

	rows := [][]string{
		{"Name", p.Name},
		{"Age", strconv.Itoa(p.Age)},
		{"Health", fmt.Sprintf("%.1f", p.Health)},
		{"Stress", fmt.Sprintf("%.0f", p.Stress)},
		{"Int/Cha/Luck", fmt.Sprintf("%d/%d/%d", p.Intelligence, p.Charisma, p.Luck)},
		{"Balance", fmt.Sprintf("$%.2f", p.Balance)},
		{"Stocks", fmt.Sprintf("$%.2f", p.StockBalance)},
		{"Loan", fmt.Sprintf("$%.2f", p.Debt)},
		{"College debt", fmt.Sprintf("$%.2f", p.CollegeDebt)},
		{"Year", fmt.Sprintf("%d/%d", p.Time, engine.YearLength)},
	}
	switch {
	case p.IsEnrolled:
		rows = append(rows, []string{"College", fmt.Sprintf("%s, year %d", p.CollegeMajor, p.CollegeYear)})
	case p.IsGraduate:
		rows = append(rows, []string{"Degree", string(p.CollegeMajor)})
	}
	if p.IsEmployed {
		rows = append(rows, []string{"Job", p.JobTitle})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return helpStyle.Italic(false)
			}
			return gameStyle
		})

	content := titleStyle.Render("STATS") + "\n" + t.Render()
	if p.IsTestTime {
		content += "\n" + errorStyle.Render("Year-end test pending")
	}
	stateWidth := max(int(float64(m.width)*0.35), 30)
	return stateStyle.Width(stateWidth).Render(content)
}

func (m model) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.session = nil
		m.state = stateMenu
		m.menu.cursor = 0
	}
	return m, nil
}

func (m model) viewGameOver() string {
	p := m.player()
	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER") + "\n\n")
	b.WriteString(fmt.Sprintf("%s's health gave out at age %d.\n", p.Name, p.Age))
	b.WriteString(fmt.Sprintf("Net worth: $%.2f\n", p.NetWorth()))
	if p.IsGraduate {
		b.WriteString(fmt.Sprintf("Graduated in %s.\n", p.CollegeMajor))
	}
	if last, ok := m.session.History.Last(); ok && last.Narrative != "" {
		b.WriteString("\n" + gameStyle.Italic(true).Render(last.Narrative) + "\n")
	}
	if m.err != nil && !errors.Is(m.err, engine.ErrGameOver) {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("press enter to return to the menu"))
	return b.String()
}
