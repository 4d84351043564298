package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type passwordModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newPasswordModel() passwordModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].EchoMode = textinput.EchoPassword
		inputs[i].EchoCharacter = '*'
	}
	inputs[0].Focus()
	return passwordModel{inputs: inputs}
}

func (m passwordModel) View() string {
	out := titleStyle.Render("Change password") + "\n\n"
	out += "Current password: [" + m.inputs[0].View() + "]\n"
	out += "New password:     [" + m.inputs[1].View() + "]\n"
	out += "Repeat new:       [" + m.inputs[2].View() + "]\n\n"
	if m.submitting {
		out += statusStyle.Render("Saving...") + "\n\n"
	}
	out += helpStyle.Render("esc back  tab next field  enter save")
	return out
}
