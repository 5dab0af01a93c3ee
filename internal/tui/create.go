package tui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/lifesim/internal/engine"
	"github.com/tatianab/lifesim/internal/models"
)

const (
	fieldName = iota
	fieldGender
	fieldIntelligence
	fieldCharisma
	fieldLuck
	fieldConfirm
)

var attributeNames = [3]string{"Intelligence", "Charisma", "Luck"}

type createModel struct {
	field  int
	gender models.Gender
	attrs  [3]int
}

func (m model) beginCreate() model {
	m.state = stateCreate
	m.create = createModel{gender: models.GenderFemale, attrs: [3]int{6, 6, 6}}
	m.textInput.Reset()
	m.textInput.Placeholder = "Your name"
	m.textInput.Focus()
	return m
}

func (m model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	c := &m.create

	switch key.String() {
	case "esc":
		m.textInput.Blur()
		m.state = stateMenu
		return m, nil
	case "tab", "down":
		c.field = min(c.field+1, fieldConfirm)
	case "shift+tab", "up":
		c.field = max(c.field-1, fieldName)
	case "left", "right":
		if c.field == fieldName {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		step := 1
		if key.String() == "left" {
			step = -1
		}
		c.adjust(step)
		return m, nil
	case "enter":
		if c.field != fieldConfirm {
			c.field++
			break
		}
		return m.finishCreate()
	default:
		if c.field == fieldName {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	if c.field == fieldName {
		m.textInput.Focus()
	} else {
		m.textInput.Blur()
	}
	return m, nil
}

func (c *createModel) adjust(step int) {
	switch c.field {
	case fieldGender:
		if c.gender == models.GenderMale {
			c.gender = models.GenderFemale
		} else {
			c.gender = models.GenderMale
		}
	case fieldIntelligence, fieldCharisma, fieldLuck:
		i := c.field - fieldIntelligence
		c.attrs[i] = min(max(c.attrs[i]+step, engine.MinAttribute), engine.MaxAttribute)
		c.attrs[0], c.attrs[1], c.attrs[2] = engine.ClampAttributes(c.attrs[0], c.attrs[1], c.attrs[2])
	}
}

func (c createModel) remaining() int {
	return engine.AttributePoints - c.attrs[0] - c.attrs[1] - c.attrs[2]
}

func (m model) finishCreate() (tea.Model, tea.Cmd) {
	c := m.create
	p, err := engine.NewCharacter(m.textInput.Value(), c.gender, c.attrs[0], c.attrs[1], c.attrs[2])
	if err != nil {
		m.fail(err)
		return m, nil
	}

	session := models.NewGameSession("", p)
	session.Slot = slotFor(p.Name, session.ID.String())
	m.textInput.Blur()
	m.textInput.Reset()
	m.deps.Logger.Info("new life", "player", p.Name, "slot", session.Slot)

	m = m.startSession(session)
	m.logLine(goodStyle.Render(fmt.Sprintf("%s is born into adulthood at %d with $%.0f.", p.Name, p.Age, p.Balance)))
	m.saveSession()
	return m, nil
}

// slotFor names a save slot after the player, keeping lives with the same
// name apart.
func slotFor(name, id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return b.String() + "-" + id
}

func (m model) viewCreate() string {
	c := m.create
	var b strings.Builder
	b.WriteString(titleStyle.Render("NEW LIFE") + "\n\n")

	line := func(field int, text string) {
		b.WriteString(cursorLine(c.field == field, text) + "\n")
	}
	line(fieldName, "Name: "+m.textInput.View())
	line(fieldGender, fmt.Sprintf("Gender: < %s >", c.gender))
	for i, name := range attributeNames {
		line(fieldIntelligence+i, fmt.Sprintf("%-12s < %2d >", name+":", c.attrs[i]))
	}
	b.WriteString(fmt.Sprintf("\n  Points left: %d of %d\n\n", c.remaining(), engine.AttributePoints))
	line(fieldConfirm, "Begin")

	b.WriteString("\n" + helpStyle.Render("tab/up/down to move, left/right to change, enter to continue, esc to cancel"))
	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	return b.String()
}
