package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carpool/internal/listing"
	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/registry"
)

func (m Model) handleTripsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.list
	if list == nil {
		return m, nil
	}
	sel := list.Selection()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(list.View().Trips)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		trips := list.View().Trips
		if m.cursor < len(trips) {
			return m, m.push(nav.DetailsPath(m.route.Role, trips[m.cursor].ID))
		}
	case key.Matches(msg, m.keys.Region):
		if m.route.Role != nav.RoleDriver {
			return m, nil
		}
		return m, m.fetchTrips(list, list.SetRegion(m.nextRegion(sel.Region)))
	case key.Matches(msg, m.keys.Tariff):
		if m.route.Role != nav.RoleDriver {
			return m, nil
		}
		options := append([]registry.Tariff{""}, registry.Tariffs...)
		return m, m.fetchTrips(list, list.SetTariff(cycle(options, sel.Tariff)))
	case key.Matches(msg, m.keys.Status):
		m.cursor = 0
		return m, m.fetchTrips(list, list.SetStatus(cycle(registry.Statuses, sel.Status)))
	case key.Matches(msg, m.keys.PageSize):
		return m, m.fetchTrips(list, list.SetPageSize(cycle(listing.PageSizes, sel.PageSize)))
	case key.Matches(msg, m.keys.NextPage):
		m.cursor = 0
		return m, m.fetchTrips(list, list.NextPage())
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor = 0
		return m, m.fetchTrips(list, list.PrevPage())
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchTrips(list, list.Refresh())
	case key.Matches(msg, m.keys.NewTrip):
		if m.route.Role == nav.RolePassenger {
			return m, m.push(nav.NewTripPath)
		}
	}
	return m, nil
}

// nextRegion cycles All -> each loaded region -> All.
func (m Model) nextRegion(current string) string {
	options := []string{""}
	for _, r := range m.list.Regions() {
		options = append(options, r.Name)
	}
	return cycle(options, current)
}

func (m *Model) clampCursor() {
	if m.list == nil {
		m.cursor = 0
		return
	}
	n := len(m.list.View().Trips)
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) renderTrips() string {
	if m.list == nil {
		return ""
	}
	styles := m.theme.Styles()
	view := m.list.View()

	var b strings.Builder
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	switch {
	case view.Loading:
		b.WriteString(" " + styles.MutedText.Render("Loading trips..."))
	case view.Err != nil:
		b.WriteString(" " + styles.DangerText.Render(view.Message))
		b.WriteString("\n\n ")
		b.WriteString(styles.MutedText.Render("Press r to retry."))
	case view.Empty():
		b.WriteString(" " + styles.MutedText.Render("No trips found."))
	default:
		b.WriteString(m.renderTripTable(view.Trips))
		b.WriteString("\n")
		b.WriteString(m.renderPager(view))
	}
	return b.String()
}

func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	sel := m.list.Selection()

	field := func(label, value string) string {
		return bg.Render(label, styles.MutedText) + bg.Space() + bg.Render(value, styles.Text)
	}
	// Passengers only see region and tariff when a shared location set them.
	driver := m.route.Role == nav.RoleDriver
	var parts []string
	if driver || sel.Region != "" {
		parts = append(parts, field("Region", orAll(sel.Region)))
	}
	if driver || sel.Tariff != "" {
		parts = append(parts, field("Tariff", orAll(string(sel.Tariff))))
	}
	parts = append(parts,
		field("Status", sel.Status.Label()),
		field("Per page", strconv.Itoa(sel.PageSize)),
	)
	if msg := m.list.RegionsMessage(); msg != "" && driver {
		parts = append(parts, bg.Render(msg, styles.WarningText))
	}
	if m.list.InFlight() {
		parts = append(parts, bg.Render("fetching", styles.FaintText))
	}
	return bg.FillLine(bg.Space()+bg.Join(parts, "   "), m.width)
}

func (m Model) renderTripTable(trips []registry.Trip) string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth
	wide := m.width >= LayoutWideWidth

	const tariffW, statusW, regionW = 10, 13, 14
	idW := 10
	if compact {
		idW = 0
	}
	fixed := 2 + tariffW + statusW + idW
	if wide {
		fixed += regionW
	}
	addrW := max((m.width-fixed-4)/2, 8)

	header := " "
	if idW > 0 {
		header += cell("ID", idW)
	}
	header += cell("From", addrW) + " " + cell("To", addrW) + " " + cell("Tariff", tariffW) + cell("Status", statusW)
	if wide {
		header += cell("Region", regionW)
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Bold(true).Render(header))
	for i, t := range trips {
		row := " "
		if idW > 0 {
			row += cell(t.ID, idW)
		}
		row += cell(t.From, addrW) + " " + cell(t.To, addrW) + " "
		b.WriteString("\n")
		// Selected row renders as one block so the highlight spans the line
		if i == m.cursor {
			row += cell(string(t.Tariff), tariffW) + cell(t.Status.Label(), statusW)
			if wide {
				row += cell(t.Region, regionW)
			}
			b.WriteString(styles.Selected.Render(cell(row, m.width)))
			continue
		}
		b.WriteString(styles.Text.Render(row))
		b.WriteString(styles.TariffStyle(t.Tariff).Render(cell(string(t.Tariff), tariffW)))
		b.WriteString(styles.StatusStyle(t.Status).Render(t.Status.Label()))
		// Status labels are styled alone, so pad to the column by hand
		if wide {
			pad := statusW - len(t.Status.Label()) - 2
			b.WriteString(strings.Repeat(" ", max(pad, 1)))
			b.WriteString(styles.MutedText.Render(cell(t.Region, regionW)))
		}
	}
	return b.String()
}

func (m Model) renderPager(view listing.View) string {
	styles := m.theme.Styles()
	prev := styles.FaintText.Render("< p")
	if m.list.CanPrev() {
		prev = styles.AccentText.Render("< p")
	}
	next := styles.FaintText.Render("n >")
	if m.list.CanNext() {
		next = styles.AccentText.Render("n >")
	}
	info := fmt.Sprintf("Page %d of %d  (%d trips)", view.Page, view.PageCount, view.ItemCount)
	return " " + prev + "  " + styles.MutedText.Render(info) + "  " + next
}
