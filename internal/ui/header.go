package ui

import (
	"net/url"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/carpool/internal/nav"
)

// renderHeader renders the top bar: logo, page, role and location.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("carpool", styles.Logo),
		bg.Render(pageTitle(m.route), styles.Text.Bold(true)),
	}
	if m.route.Role != "" {
		parts = append(parts, bg.Render("as "+m.route.Role, styles.AccentText))
	}
	parts = append(parts, bg.Render(truncate(m.history.Location().String(), 60), styles.MutedText))
	if host := registryHost(m.registryURL); host != "" {
		parts = append(parts, bg.Render("registry", styles.FaintText)+bg.Space()+bg.Render(host, styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar lists the keys that apply to the current screen, or the
// last flash message.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	if m.flash != "" {
		return bg.FillLine(bg.Space()+bg.Render(m.flash, styles.InfoText), m.width)
	}

	var bindings []key.Binding
	switch {
	case m.showLogs:
		bindings = []key.Binding{m.keys.Search, m.keys.Refresh, m.keys.Logs}
	case m.route.Page == nav.PageHome:
		bindings = []key.Binding{m.keys.Passenger, m.keys.Driver}
	case m.route.Page == nav.PageTrips:
		bindings = []key.Binding{m.keys.Open}
		if m.route.Role == nav.RoleDriver {
			bindings = append(bindings, m.keys.Region, m.keys.Tariff)
		}
		bindings = append(bindings, m.keys.Status, m.keys.PageSize, m.keys.PrevPage, m.keys.NextPage, m.keys.Refresh)
		if m.route.Role == nav.RolePassenger {
			bindings = append(bindings, m.keys.NewTrip)
		}
	case m.route.Page == nav.PageTripDetails:
		if m.details != nil && m.details.Role().CanTransition() {
			bindings = append(bindings, m.keys.Advance)
		}
		bindings = append(bindings, m.keys.Refresh)
	}
	if m.route.Page != nav.PageNewTrip {
		bindings = append(bindings, m.keys.Back, m.keys.Forward, m.keys.CopyLoc, m.keys.Help, m.keys.Quit)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		keyStyle, descStyle := styles.Key, styles.MutedText
		if !m.bindingAvailable(b) {
			keyStyle, descStyle = styles.FaintText, styles.FaintText
		}
		parts = append(parts, bg.Render(h.Key, keyStyle)+bg.Space()+bg.Render(h.Desc, descStyle))
	}
	return bg.FillLine(bg.Space()+bg.Join(parts, "  "), m.width)
}

// bindingAvailable reports whether pressing b would do anything right now.
// Unavailable hints stay in place but are dimmed.
func (m Model) bindingAvailable(b key.Binding) bool {
	switch b.Help().Key {
	case m.keys.Back.Help().Key:
		return m.history.CanBack()
	case m.keys.Forward.Help().Key:
		return m.history.CanForward()
	case m.keys.Refresh.Help().Key:
		return m.showLogs || m.list == nil || !m.list.InFlight()
	}
	return true
}

func pageTitle(r nav.Route) string {
	switch r.Page {
	case nav.PageHome:
		return "Home"
	case nav.PageTrips:
		return "Trips"
	case nav.PageNewTrip:
		return "New trip"
	case nav.PageTripDetails:
		return "Trip " + r.TripID
	default:
		return "Not found"
	}
}

func registryHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
