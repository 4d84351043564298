package tui

import (
	"fmt"

	"practice-manager/internal/session"
)

type menuModel struct {
	items []string
	idx   int
}

func newMenuModel() menuModel {
	return menuModel{
		items: []string{
			"Today's agenda",
			"Change password",
			"Lock screen",
			"Sign out",
		},
	}
}

func (m menuModel) view(info session.Info) string {
	out := titleStyle.Render("Practice Manager") + "\n"
	if info.Active {
		out += fmt.Sprintf("%s (%s), signed in for %s\n",
			info.User.Name, info.Role, info.Duration.Round(timeRounding))
	}
	out += "\n"
	for i, item := range m.items {
		line := "  " + item
		if i == m.idx {
			line = selectedStyle.Render("> " + item)
		}
		out += line + "\n"
	}
	out += "\n" + helpStyle.Render("up/down move  enter select  ctrl+l lock  ctrl+c quit")
	return out
}
