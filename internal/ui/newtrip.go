package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/registry"
)

// Form fields in focus order.
const (
	fieldFrom = iota
	fieldTo
	fieldTariff
	fieldRegion
	fieldCount
)

// tripForm is the passenger's new trip form.
type tripForm struct {
	from textinput.Model
	to   textinput.Model

	tariff     registry.Tariff
	regions    []registry.Region
	regionsErr error
	region     string

	focus      int
	submitting bool
	err        string
}

func newTripForm() *tripForm {
	input := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = registry.MaxAddressLength
		ti.Prompt = ""
		return ti
	}
	f := &tripForm{
		from:   input("Pick-up address"),
		to:     input("Drop-off address"),
		tariff: registry.TariffEconomy,
	}
	f.from.Focus()
	return f
}

func (f *tripForm) regionsLoaded(regions []registry.Region, err error) {
	f.regionsErr = err
	f.regions = regions
	if f.region == "" && len(regions) > 0 {
		f.region = regions[0].Name
	}
}

func (f *tripForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	f.from.Blur()
	f.to.Blur()
	switch f.focus {
	case fieldFrom:
		f.from.Focus()
	case fieldTo:
		f.to.Focus()
	}
}

// cycleChoice steps the tariff or region selector.
func (f *tripForm) cycleChoice(forward bool) {
	switch f.focus {
	case fieldTariff:
		values := registry.Tariffs
		if !forward {
			values = reversed(values)
		}
		f.tariff = cycle(values, f.tariff)
	case fieldRegion:
		names := make([]string, 0, len(f.regions))
		for _, r := range f.regions {
			names = append(names, r.Name)
		}
		if len(names) == 0 {
			return
		}
		if !forward {
			names = reversed(names)
		}
		f.region = cycle(names, f.region)
	}
}

// update forwards msg to the focused text input.
func (f *tripForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldFrom:
		f.from, cmd = f.from.Update(msg)
	case fieldTo:
		f.to, cmd = f.to.Update(msg)
	}
	return cmd
}

func (f *tripForm) request() registry.NewTrip {
	return registry.NewTrip{
		From:   strings.TrimSpace(f.from.Value()),
		To:     strings.TrimSpace(f.to.Value()),
		Tariff: f.tariff,
		Region: f.region,
	}
}

func (m Model) handleNewTripKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		return m, m.up()
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "left", "right", " ":
		if f.focus == fieldTariff || f.focus == fieldRegion {
			f.cycleChoice(msg.String() != "left")
			return m, nil
		}
	case "enter":
		if f.submitting {
			return m, nil
		}
		req := f.request()
		if err := req.Validate(); err != nil {
			f.err = err.Error()
			return m, nil
		}
		f.err = ""
		f.submitting = true
		return m, m.createTrip(f, req)
	}
	return m, f.update(msg)
}

func (m Model) handleCreated(msg tripCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.form != m.form || m.form == nil {
		return m, nil
	}
	m.form.submitting = false
	if msg.err != nil {
		m.logger.Warn("create trip failed", "error", msg.err)
		m.form.err = registry.Message(msg.err)
		return m, nil
	}
	m.logger.Info("trip created", "trip_id", msg.trip.ID)
	cmd := m.push(nav.TripsPath(nav.RolePassenger))
	m.flash = "Trip created"
	return m, cmd
}

func (m Model) renderNewTrip() string {
	f := m.form
	if f == nil {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder

	label := func(i int, text string) string {
		if f.focus == i {
			return styles.AccentText.Render("> " + cell(text, 9))
		}
		return styles.MutedText.Render("  " + cell(text, 9))
	}
	choice := func(i int, value string) string {
		if f.focus == i {
			return styles.Text.Render("< " + value + " >")
		}
		return styles.Text.Render(value)
	}

	b.WriteString("\n " + styles.Text.Bold(true).Render("New trip") + "\n\n")
	b.WriteString(" " + label(fieldFrom, "From") + f.from.View() + "\n")
	b.WriteString(" " + label(fieldTo, "To") + f.to.View() + "\n")
	b.WriteString(" " + label(fieldTariff, "Tariff") + choice(fieldTariff, string(f.tariff)) + "\n")

	region := f.region
	switch {
	case f.regionsErr != nil:
		region = styles.WarningText.Render("Regions unavailable: " + registry.Message(f.regionsErr))
	case len(f.regions) == 0:
		region = styles.FaintText.Render("loading...")
	default:
		region = choice(fieldRegion, region)
	}
	b.WriteString(" " + label(fieldRegion, "Region") + region + "\n\n")

	switch {
	case f.submitting:
		b.WriteString(" " + styles.WarningText.Render("Creating trip..."))
	case f.err != "":
		b.WriteString(" " + styles.DangerText.Render(f.err))
	default:
		b.WriteString(" " + styles.FaintText.Render("enter to book, tab to move, left/right to choose, esc to cancel"))
	}
	return b.String()
}

func reversed[T any](values []T) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
