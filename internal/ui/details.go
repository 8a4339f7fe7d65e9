package ui

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carpool/internal/lifecycle"
	"github.com/five82/carpool/internal/registry"
)

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.details
	if ctrl == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Advance):
		actions := ctrl.Actions()
		if len(actions) == 0 {
			if !ctrl.Role().CanTransition() {
				m.flash = "Passengers cannot change trip status"
			}
			return m, nil
		}
		req, err := ctrl.Prepare(actions[0].Action)
		if err != nil {
			if errors.Is(err, lifecycle.ErrBusy) {
				m.flash = "Update already in progress"
			} else {
				m.flash = err.Error()
			}
			return m, nil
		}
		return m, m.updateTrip(ctrl, req)
	case key.Matches(msg, m.keys.Refresh):
		if ctrl.Updating() {
			return m, nil
		}
		return m, m.loadTrip(ctrl)
	}
	return m, nil
}

func (m Model) renderDetails() string {
	ctrl := m.details
	if ctrl == nil {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder

	trip, ok := ctrl.Trip()
	switch {
	case ctrl.Loading():
		b.WriteString("\n " + styles.MutedText.Render("Loading trip..."))
		return b.String()
	case !ok:
		msg := ctrl.Message()
		if msg == "" {
			msg = "Trip not found"
		}
		b.WriteString("\n " + styles.DangerText.Render(msg))
		b.WriteString("\n\n " + styles.MutedText.Render("Press r to retry or esc to return to the list."))
		return b.String()
	}

	row := func(label, value string) {
		b.WriteString(" " + styles.MutedText.Render(cell(label, 10)) + value + "\n")
	}
	b.WriteString("\n " + styles.Text.Bold(true).Render("Trip "+trip.ID) + "\n\n")
	row("From", styles.Text.Render(trip.From))
	row("To", styles.Text.Render(trip.To))
	row("Tariff", styles.TariffStyle(trip.Tariff).Render(string(trip.Tariff)))
	row("Status", styles.StatusStyle(trip.Status).Render(trip.Status.Label()))
	if trip.Region != "" {
		row("Region", styles.Text.Render(trip.Region))
	}
	if len(trip.Extra) > 0 {
		keys := make([]string, 0, len(trip.Extra))
		for k := range trip.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			row(k, styles.FaintText.Render(truncate(string(trip.Extra[k]), 60)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderTripActions(ctrl, trip))
	return b.String()
}

func (m Model) renderTripActions(ctrl *lifecycle.Controller, trip registry.Trip) string {
	styles := m.theme.Styles()
	var line string
	switch {
	case ctrl.Updating():
		line = styles.WarningText.Render("Updating trip...")
	case !ctrl.Role().CanTransition():
		line = styles.FaintText.Render("Read only: the driver updates this trip.")
	case trip.Status.Terminal():
		line = styles.SuccessText.Render("Trip completed.")
	default:
		for _, tr := range ctrl.Actions() {
			line = styles.Key.Render("[a]") + " " + styles.Text.Render(tr.Label)
		}
	}
	out := " " + line
	if msg := ctrl.Message(); msg != "" {
		out += "\n\n " + styles.DangerText.Render(msg)
	}
	return out
}
