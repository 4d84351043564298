package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"practice-manager/internal/model"
)

type agendaModel struct {
	items   []model.Appointment
	idx     int
	loading bool
	spinner spinner.Model
	status  string
}

func newAgendaModel() agendaModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return agendaModel{spinner: s, loading: true}
}

func statusTag(status string) string {
	switch status {
	case model.StatusScheduled:
		return "[S]"
	case model.StatusCompleted:
		return "[C]"
	case model.StatusCancelled:
		return "[X]"
	default:
		return "[?]"
	}
}

func (m agendaModel) View() string {
	header := titleStyle.Render("Today's agenda")
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	switch {
	case m.loading:
		out += "Loading...\n"
	case len(m.items) == 0:
		out += "No appointments today\n"
	default:
		var b strings.Builder
		for i, a := range m.items {
			line := fmt.Sprintf("%s %s  %-20s %-20s %s",
				statusTag(a.Status),
				a.StartsAt.Format("15:04"),
				a.PatientName,
				a.ClinicianName,
				a.Modality,
			)
			if i == m.idx {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		out += b.String()
	}

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status) + "\n"
	}
	out += "\n" + helpStyle.Render("up/down move  r refresh  esc back")
	return out
}
