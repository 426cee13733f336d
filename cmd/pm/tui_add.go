package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// addFields is the order in which the add form collects values.
var addFields = []string{"username", "password", "url", "notes"}

type addFormModel struct {
	inputs  []textinput.Model
	focus   int
	done    bool
	aborted bool
}

func newAddFormModel() addFormModel {
	inputs := make([]textinput.Model, len(addFields))
	for i, name := range addFields {
		ti := textinput.New()
		ti.Placeholder = name
		ti.CharLimit = 256
		if name == "password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		inputs[i] = ti
	}
	inputs[0].Focus()
	return addFormModel{inputs: inputs}
}

func (m addFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m addFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.focus == len(m.inputs)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.inputs[m.focus].Blur()
			m.focus++
			m.inputs[m.focus].Focus()
			return m, nil
		case "tab", "down":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil
		case "shift+tab", "up":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m addFormModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("new entry")
	out := title + "\n\n"
	for i, name := range addFields {
		marker := "  "
		if i == m.focus {
			marker = "> "
		}
		out += fmt.Sprintf("%s%-9s %s\n", marker, name, m.inputs[i].View())
	}
	out += "\n(tab/enter to move, esc to cancel)\n"
	return out
}

// runAddForm drives the interactive form and returns username,
// password, url, notes in that order.
func runAddForm() (string, string, string, string, error) {
	p := tea.NewProgram(newAddFormModel())
	finalModel, err := p.Run()
	if err != nil {
		return "", "", "", "", err
	}
	m := finalModel.(addFormModel)
	if m.aborted {
		return "", "", "", "", errors.New("add cancelled")
	}
	return m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value(), m.inputs[3].Value(), nil
}
