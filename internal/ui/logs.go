package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carpool/internal/logtail"
)

// logView shows the tail of carpool's own log file.
type logView struct {
	viewport viewport.Model
	records  []logtail.Record
	err      error

	searching bool
	search    textinput.Model
	query     string
}

func newLogView() logView {
	ti := textinput.New()
	ti.Placeholder = "Filter logs..."
	ti.CharLimit = 100
	return logView{
		viewport: viewport.New(0, 0),
		search:   ti,
	}
}

func (v *logView) resize(width, height int) {
	v.viewport.Width = max(width, 0)
	v.viewport.Height = max(height-1, 0)
}

func (v *logView) loaded(records []logtail.Record, err error) {
	v.records = records
	v.err = err
}

// matches returns the records containing the query, ignoring case.
func (v *logView) matches() []logtail.Record {
	q := strings.ToLower(strings.TrimSpace(v.query))
	if q == "" {
		return v.records
	}
	var out []logtail.Record
	for _, r := range v.records {
		if strings.Contains(strings.ToLower(r.String()), q) {
			out = append(out, r)
		}
	}
	return out
}

// render fills the viewport and scrolls to the newest record.
func (v *logView) render(theme Theme) {
	styles := theme.Styles()
	if v.err != nil {
		v.viewport.SetContent(styles.DangerText.Render("Cannot read log: " + v.err.Error()))
		return
	}
	records := v.matches()
	if len(records) == 0 {
		v.viewport.SetContent(styles.MutedText.Render("No log records."))
		return
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = levelStyle(styles, r.Level).Render(r.String())
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
	v.viewport.GotoBottom()
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.searching {
		switch msg.String() {
		case "enter", "esc":
			m.logs.searching = false
			m.logs.search.Blur()
			if msg.String() == "esc" {
				m.logs.search.SetValue("")
			}
			m.logs.query = m.logs.search.Value()
			m.logs.render(m.theme)
			return m, nil
		}
		var cmd tea.Cmd
		m.logs.search, cmd = m.logs.search.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.readLogs()
	case key.Matches(msg, m.keys.Search):
		m.logs.searching = true
		m.logs.search.Focus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	var status string
	switch {
	case m.logs.searching:
		status = styles.AccentText.Render("/") + m.logs.search.View()
	case m.logs.query != "":
		status = styles.MutedText.Render("filter: " + m.logs.query)
	case m.logFile != "":
		status = styles.FaintText.Render(truncate(m.logFile, max(m.width-2, 10)))
	default:
		status = styles.FaintText.Render("logging disabled")
	}
	return " " + status + "\n" + m.logs.viewport.View()
}
