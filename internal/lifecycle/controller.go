package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/carpool/internal/registry"
)

var (
	// ErrReadOnly is returned when a passenger asks for a transition.
	ErrReadOnly = errors.New("passengers cannot change trip status")
	// ErrNotOffered is returned for an action the trip's status does not allow.
	ErrNotOffered = errors.New("action not available for this trip")
	// ErrBusy is returned while an earlier update is outstanding.
	ErrBusy = errors.New("trip update already in progress")
	// ErrNotLoaded is returned before the trip has loaded.
	ErrNotLoaded = errors.New("trip not loaded")
)

// API is the part of the registry the controller calls.
type API interface {
	GetTrip(ctx context.Context, id string) (registry.Trip, error)
	UpdateTripStatus(ctx context.Context, id string, updated registry.Trip) (registry.Trip, error)
}

// Load is a ticket for one trip fetch.
type Load struct {
	Gen uint64
	ID  string
}

// LoadResult is the outcome of a Load.
type LoadResult struct {
	Load Load
	Trip registry.Trip
	Err  error
}

// Request is a prepared status update carrying the full document to send.
type Request struct {
	Gen        uint64
	Transition Transition
	Updated    registry.Trip
}

// UpdateResult is the outcome of a Request.
type UpdateResult struct {
	Request Request
	Trip    registry.Trip
	Err     error
}

// Controller holds one trip as seen by one role.
//
// Local trip state changes only after the registry confirms a write, so a
// failed update leaves the previous document in place. Like the list
// controller it is driven from a single goroutine; requests are performed
// with Fetch and Perform, which touch only the API.
type Controller struct {
	api    API
	role   Role
	id     string
	logger *slog.Logger

	trip    registry.Trip
	hasTrip bool
	loadGen uint64
	loading bool
	loadErr error

	updateGen uint64
	updating  bool
	updateErr error
}

// NewController builds a controller for trip id viewed as role.
func NewController(api API, role Role, id string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		api:    api,
		role:   role,
		id:     id,
		logger: logger.With("component", "lifecycle", "trip_id", id, "role", string(role)),
	}
}

// ID returns the trip id.
func (c *Controller) ID() string { return c.id }

// Role returns the viewing role.
func (c *Controller) Role() Role { return c.role }

// Trip returns the current document and whether one has loaded.
func (c *Controller) Trip() (registry.Trip, bool) {
	return c.trip.Clone(), c.hasTrip
}

// Loading reports whether the trip is being fetched.
func (c *Controller) Loading() bool { return c.loading }

// Updating reports whether a status update is outstanding.
func (c *Controller) Updating() bool { return c.updating }

// Err returns the error to show, load failures first.
func (c *Controller) Err() error {
	if c.loadErr != nil {
		return c.loadErr
	}
	return c.updateErr
}

// Message returns the user-facing text for Err, or "".
func (c *Controller) Message() string {
	return registry.Message(c.Err())
}

// BeginLoad marks the trip as loading and returns the fetch ticket.
func (c *Controller) BeginLoad() Load {
	c.loadGen++
	c.loading = true
	c.loadErr = nil
	return Load{Gen: c.loadGen, ID: c.id}
}

// Fetch performs l. It touches only the API.
func (c *Controller) Fetch(ctx context.Context, l Load) LoadResult {
	trip, err := c.api.GetTrip(ctx, l.ID)
	return LoadResult{Load: l, Trip: trip, Err: err}
}

// Loaded commits a fetch result. Results from superseded loads are ignored.
func (c *Controller) Loaded(res LoadResult) {
	if res.Load.Gen != c.loadGen {
		c.logger.Debug("dropping stale trip load", "gen", res.Load.Gen)
		return
	}
	c.loading = false
	if res.Err != nil {
		c.logger.Warn("trip load failed", "error", res.Err)
		c.loadErr = res.Err
		c.trip = registry.Trip{}
		c.hasTrip = false
		return
	}
	c.loadErr = nil
	c.trip = res.Trip
	c.hasTrip = true
}

// Load fetches the trip on the calling goroutine.
func (c *Controller) Load(ctx context.Context) error {
	c.Loaded(c.Fetch(ctx, c.BeginLoad()))
	return c.loadErr
}

// Actions returns the transitions offered to the role for the current trip:
// the next forward edge for a driver, nothing for a passenger or a completed
// trip.
func (c *Controller) Actions() []Transition {
	if !c.hasTrip || !c.role.CanTransition() || c.trip.Status.Terminal() {
		return nil
	}
	tr, ok := NextTransition(c.trip.Status)
	if !ok {
		return nil
	}
	return []Transition{tr}
}

// Prepare validates action and builds the update request. The document sent
// is the current trip with only its status changed.
func (c *Controller) Prepare(action Action) (Request, error) {
	switch {
	case !c.role.CanTransition():
		return Request{}, ErrReadOnly
	case !c.hasTrip:
		return Request{}, ErrNotLoaded
	case c.updating:
		return Request{}, ErrBusy
	}
	var offered *Transition
	for _, tr := range c.Actions() {
		if tr.Action == action {
			offered = &tr
			break
		}
	}
	if offered == nil {
		return Request{}, fmt.Errorf("%w: %s from %s", ErrNotOffered, action, c.trip.Status)
	}

	c.updateGen++
	c.updating = true
	c.updateErr = nil
	return Request{
		Gen:        c.updateGen,
		Transition: *offered,
		Updated:    c.trip.WithStatus(offered.To),
	}, nil
}

// Perform sends req to the registry. It touches only the API.
func (c *Controller) Perform(ctx context.Context, req Request) UpdateResult {
	trip, err := c.api.UpdateTripStatus(ctx, c.id, req.Updated)
	return UpdateResult{Request: req, Trip: trip, Err: err}
}

// Resolve commits an update result. On success the registry's full document
// replaces the local trip; on failure the local trip is left as it was.
func (c *Controller) Resolve(res UpdateResult) {
	if res.Request.Gen != c.updateGen {
		c.logger.Debug("dropping stale trip update", "gen", res.Request.Gen)
		return
	}
	c.updating = false
	logger := c.logger.With("action", string(res.Request.Transition.Action))
	if res.Err != nil {
		logger.Warn("trip update failed", "error", res.Err)
		c.updateErr = res.Err
		return
	}
	trip := res.Trip
	if trip.ID == "" {
		trip.ID = c.id
	}
	c.trip = trip
	c.hasTrip = true
	c.updateErr = nil
	logger.Info("trip status changed", "from", string(res.Request.Transition.From), "to", string(trip.Status))
}

// Transition runs action end to end on the calling goroutine.
func (c *Controller) Transition(ctx context.Context, action Action) error {
	req, err := c.Prepare(action)
	if err != nil {
		return err
	}
	res := c.Perform(ctx, req)
	c.Resolve(res)
	return res.Err
}

// StartTrip moves a planned trip to in progress.
func (c *Controller) StartTrip(ctx context.Context) error {
	return c.Transition(ctx, ActionStartTrip)
}

// Arrive marks an in-progress trip as arrived.
func (c *Controller) Arrive(ctx context.Context) error {
	return c.Transition(ctx, ActionArrive)
}

// CompleteTrip completes an arrived trip.
func (c *Controller) CompleteTrip(ctx context.Context) error {
	return c.Transition(ctx, ActionComplete)
}
