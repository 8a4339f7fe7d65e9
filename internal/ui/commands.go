package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carpool/internal/lifecycle"
	"github.com/five82/carpool/internal/listing"
	"github.com/five82/carpool/internal/logtail"
	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/registry"
)

// Messages

type tripsMsg struct {
	list *listing.Controller
	res  listing.Result
}

type regionsMsg struct {
	list    *listing.Controller
	regions []registry.Region
	err     error
}

type tripLoadedMsg struct {
	ctrl *lifecycle.Controller
	res  lifecycle.LoadResult
}

type tripUpdatedMsg struct {
	ctrl *lifecycle.Controller
	res  lifecycle.UpdateResult
}

type formRegionsMsg struct {
	form    *tripForm
	regions []registry.Region
	err     error
}

type tripCreatedMsg struct {
	form *tripForm
	trip registry.Trip
	err  error
}

type logsMsg struct {
	records []logtail.Record
	err     error
}

type flashMsg string

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Commands

// requestContext bounds one registry call by the configured timeout.
func requestContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func (m Model) fetchTrips(list *listing.Controller, f *listing.Fetch) tea.Cmd {
	if f == nil || list == nil {
		return nil
	}
	ctx, timeout := m.ctx, m.timeout
	fetch := *f
	projector := list.Projector()
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		return tripsMsg{list: list, res: projector.Fetch(rctx, fetch)}
	}
}

func (m Model) fetchRegions(list *listing.Controller) tea.Cmd {
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		regions, err := api.ListRegions(rctx)
		return regionsMsg{list: list, regions: regions, err: err}
	}
}

func (m Model) loadTrip(ctrl *lifecycle.Controller) tea.Cmd {
	load := ctrl.BeginLoad()
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		return tripLoadedMsg{ctrl: ctrl, res: ctrl.Fetch(rctx, load)}
	}
}

func (m Model) updateTrip(ctrl *lifecycle.Controller, req lifecycle.Request) tea.Cmd {
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		return tripUpdatedMsg{ctrl: ctrl, res: ctrl.Perform(rctx, req)}
	}
}

func (m Model) fetchFormRegions(form *tripForm) tea.Cmd {
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		regions, err := api.ListRegions(rctx)
		return formRegionsMsg{form: form, regions: regions, err: err}
	}
}

func (m Model) createTrip(form *tripForm, req registry.NewTrip) tea.Cmd {
	api, ctx, timeout := m.api, m.ctx, m.timeout
	return func() tea.Msg {
		rctx, cancel := requestContext(ctx, timeout)
		defer cancel()
		trip, err := api.CreateTrip(rctx, req)
		return tripCreatedMsg{form: form, trip: trip, err: err}
	}
}

func (m Model) readLogs() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		records, err := logtail.ReadRecords(path, LogTailLines)
		return logsMsg{records: records, err: err}
	}
}

func copyLocationCmd(loc nav.Location) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(loc.String()); err != nil {
			return flashMsg("Clipboard unavailable: " + err.Error())
		}
		return flashMsg("Copied " + loc.String())
	}
}
