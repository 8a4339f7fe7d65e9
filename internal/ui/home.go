package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carpool/internal/nav"
)

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Driver):
		return m, m.push(nav.TripsPath(nav.RoleDriver))
	case key.Matches(msg, m.keys.Passenger):
		return m, m.push(nav.TripsPath(nav.RolePassenger))
	case key.Matches(msg, m.keys.Open):
		if m.role != "" {
			return m, m.push(nav.TripsPath(m.role))
		}
	}
	return m, nil
}

// renderHome renders the role chooser.
func (m Model) renderHome() string {
	styles := m.theme.Styles()

	option := func(k, label, role string) string {
		line := styles.Key.Render("["+k+"]") + " " + styles.Text.Render(label)
		if role == m.role {
			line += " " + styles.FaintText.Render("(last used, enter)")
		}
		return line
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Who is travelling?"))
	b.WriteString("\n\n")
	b.WriteString(option("p", "Passenger: book and follow trips", nav.RolePassenger))
	b.WriteString("\n")
	b.WriteString(option("d", "Driver: pick up and run trips", nav.RoleDriver))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, max(m.height-chromeRows, 0), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderNotFound() string {
	styles := m.theme.Styles()
	return "\n " + styles.DangerText.Render("Page not found: "+m.history.Location().String()) +
		"\n\n " + styles.MutedText.Render("Press esc to return home.")
}
