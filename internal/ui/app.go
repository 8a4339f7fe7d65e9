package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carpool/internal/lifecycle"
	"github.com/five82/carpool/internal/listing"
	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/prefs"
	"github.com/five82/carpool/internal/registry"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Client  registry.API
	Logger  *slog.Logger

	// RegistryURL is shown in the header.
	RegistryURL    string
	PageSize       int
	RequestTimeout time.Duration
	LogFile        string

	ThemeName string
	PrefsPath string
	// Role is the role remembered from the last session.
	Role string
	// Start is the initial location.
	Start nav.Location
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx         context.Context
	api         registry.API
	logger      *slog.Logger
	registryURL string
	pageSize    int
	timeout     time.Duration
	logFile     string
	prefsPath   string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	history *nav.History
	route   nav.Route
	role    string

	// Page state; at most one is live.
	list    *listing.Controller
	cursor  int
	details *lifecycle.Controller
	form    *tripForm

	logs     logView
	showLogs bool
	showHelp bool
	flash    string
}

// New creates the root model at opts.Start.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}
	start := opts.Start
	if start.Path == "" {
		start = nav.Root
	}

	return Model{
		ctx:         ctx,
		api:         opts.Client,
		logger:      logger.With("component", "ui"),
		registryURL: opts.RegistryURL,
		pageSize:    opts.PageSize,
		timeout:     opts.RequestTimeout,
		logFile:     opts.LogFile,
		prefsPath:   opts.PrefsPath,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		history:     nav.NewHistory(start),
		role:        opts.Role,
		logs:        newLogView(),
	}
}

// Init implements tea.Model. It enters the start location.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return enterMsg{} }
}

// enterMsg asks the model to mount the page for the current location. Init
// cannot mutate the model, so mounting happens on the first Update.
type enterMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logs.resize(m.width, m.height-chromeRows)
		m.logs.render(m.theme)
		return m, nil

	case enterMsg:
		return m, m.enter()

	case tripsMsg:
		next := msg.list.Resolve(msg.res)
		if msg.list == m.list {
			m.clampCursor()
		}
		return m, m.fetchTrips(msg.list, next)

	case regionsMsg:
		msg.list.RegionsLoaded(msg.regions, msg.err)
		return m, nil

	case tripLoadedMsg:
		msg.ctrl.Loaded(msg.res)
		return m, nil

	case tripUpdatedMsg:
		msg.ctrl.Resolve(msg.res)
		if msg.res.Err == nil && msg.ctrl == m.details {
			if trip, ok := msg.ctrl.Trip(); ok {
				m.flash = "Trip is now " + trip.Status.Label()
			}
		}
		return m, nil

	case formRegionsMsg:
		msg.form.regionsLoaded(msg.regions, msg.err)
		return m, nil

	case tripCreatedMsg:
		return m.handleCreated(msg)

	case logsMsg:
		m.logs.loaded(msg.records, msg.err)
		m.logs.render(m.theme)
		return m, nil

	case flashMsg:
		m.flash = string(msg)
		return m, nil
	}

	if m.showLogs && m.logs.searching {
		var cmd tea.Cmd
		m.logs.search, cmd = m.logs.search.Update(msg)
		return m, cmd
	}
	if m.route.Page == nav.PageNewTrip && m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	if m.showLogs {
		return m.renderLogs()
	}
	switch m.route.Page {
	case nav.PageHome:
		return m.renderHome()
	case nav.PageTrips:
		return m.renderTrips()
	case nav.PageTripDetails:
		return m.renderDetails()
	case nav.PageNewTrip:
		return m.renderNewTrip()
	default:
		return m.renderNotFound()
	}
}

// handleKey routes keyboard input: overlays first, then global keys, then
// the current page.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	m.flash = ""

	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.route.Page == nav.PageNewTrip && m.form != nil {
		return m.handleNewTripKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, m.readLogs()
	case key.Matches(msg, m.keys.Back):
		return m, m.historyBack()
	case key.Matches(msg, m.keys.Forward):
		return m, m.historyForward()
	case key.Matches(msg, m.keys.CopyLoc):
		return m, copyLocationCmd(m.history.Location())
	case key.Matches(msg, m.keys.Escape):
		return m, m.up()
	}

	switch m.route.Page {
	case nav.PageHome:
		return m.handleHomeKey(msg)
	case nav.PageTrips:
		return m.handleTripsKey(msg)
	case nav.PageTripDetails:
		return m.handleDetailsKey(msg)
	}
	return m, nil
}

// push adds loc to history and mounts its page.
func (m *Model) push(loc nav.Location) tea.Cmd {
	m.history.Push(loc)
	return m.enter()
}

func (m *Model) historyBack() tea.Cmd {
	if _, ok := m.history.Back(); !ok {
		return nil
	}
	return m.enter()
}

func (m *Model) historyForward() tea.Cmd {
	if _, ok := m.history.Forward(); !ok {
		return nil
	}
	return m.enter()
}

// up moves to the parent page.
func (m *Model) up() tea.Cmd {
	switch m.route.Page {
	case nav.PageTripDetails:
		return m.push(nav.TripsPath(m.route.Role))
	case nav.PageNewTrip:
		return m.push(nav.TripsPath(nav.RolePassenger))
	case nav.PageTrips, nav.PageNotFound:
		return m.push(nav.Root)
	}
	return nil
}

// enter mounts the page for the current location. A query-only change on
// the same list keeps its controller and lets it re-read the location.
func (m *Model) enter() tea.Cmd {
	loc := m.history.Location()
	route := nav.Match(loc)
	prev := m.route
	m.route = route
	m.logger.Debug("navigate", "location", loc.String())

	if route.Page == nav.PageTrips && prev.Page == nav.PageTrips && prev.Role == route.Role && m.list != nil {
		return m.fetchTrips(m.list, m.list.LocationChanged(loc))
	}

	m.leave()
	switch route.Page {
	case nav.PageTrips:
		m.rememberRole(route.Role)
		m.list = listing.NewController(m.history, listing.NewProjector(m.api), listing.Options{
			PageSize: m.pageSize,
			Logger:   m.logger,
		})
		m.cursor = 0
		cmds := []tea.Cmd{m.fetchTrips(m.list, m.list.Mount())}
		if route.Role == nav.RoleDriver && m.list.NeedsRegions() {
			cmds = append(cmds, m.fetchRegions(m.list))
		}
		return tea.Batch(cmds...)

	case nav.PageTripDetails:
		m.details = lifecycle.NewController(m.api, lifecycle.Role(route.Role), route.TripID, m.logger)
		return m.loadTrip(m.details)

	case nav.PageNewTrip:
		m.form = newTripForm()
		return m.fetchFormRegions(m.form)
	}
	return nil
}

// leave unmounts the current page.
func (m *Model) leave() {
	if m.list != nil {
		m.list.Close()
		m.list = nil
	}
	m.details = nil
	m.form = nil
}

func (m *Model) rememberRole(role string) {
	if role == "" || role == m.role {
		return
	}
	m.role = role
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Role: m.role}); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
