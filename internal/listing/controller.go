package listing

import (
	"context"
	"io"
	"log/slog"

	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/registry"
)

// Navigator is the location the controller keeps in step with its filters.
// *nav.History implements it.
type Navigator interface {
	Location() nav.Location
	Replace(loc nav.Location)
}

// Options configure a Controller.
type Options struct {
	PageSize int
	Logger   *slog.Logger
}

// Controller owns the selection of one trip list view, from mount to Close.
//
// It is not safe for concurrent use. Every method that may require a new
// request returns a *Fetch; the caller performs it with Projector.Fetch and
// hands the Result back to Resolve. At most one fetch is outstanding, and a
// result is committed only if its selection equals the current one.
type Controller struct {
	nav       Navigator
	projector *Projector
	logger    *slog.Logger
	pageSize  int

	sel      Selection
	gen      uint64
	inflight *Fetch
	mounted  bool
	closed   bool

	regions       []registry.Region
	regionsErr    error
	regionsLoaded bool
}

// NewController builds a controller bound to navigator and projector.
func NewController(navigator Navigator, projector *Projector, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		nav:       navigator,
		projector: projector,
		logger:    logger.With("component", "listing"),
		pageSize:  opts.PageSize,
		sel:       DefaultSelection(opts.PageSize),
	}
}

// Mount seeds the selection from the current location and returns the first
// fetch.
func (c *Controller) Mount() *Fetch {
	if c.closed {
		return nil
	}
	c.mounted = true
	c.sel = DefaultSelection(c.pageSize).FromLocation(c.nav.Location())
	c.logger.Debug("list mounted", "location", c.nav.Location().String())
	c.projector.Begin()
	return c.dispatch()
}

// Close ends the controller's lifetime. Later results are dropped.
func (c *Controller) Close() {
	c.closed = true
	c.inflight = nil
	c.regions = nil
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection { return c.sel }

// Projector returns the projector holding the committed page.
func (c *Controller) Projector() *Projector { return c.projector }

// View is shorthand for Projector().View().
func (c *Controller) View() View { return c.projector.View() }

// InFlight reports whether a fetch is outstanding.
func (c *Controller) InFlight() bool { return c.inflight != nil }

// LocationChanged re-derives the region and tariff filters from loc. The
// location wins over whatever the controller held.
func (c *Controller) LocationChanged(loc nav.Location) *Fetch {
	return c.change(c.sel.FromLocation(loc))
}

// SetRegion filters by region name; "" clears the filter. The location is
// updated in place without adding a history entry.
func (c *Controller) SetRegion(name string) *Fetch {
	next := c.sel
	next.Region = filterValue(name)
	c.writeLocation(next)
	return c.change(next)
}

// SetTariff filters by tariff; "" clears the filter.
func (c *Controller) SetTariff(tariff registry.Tariff) *Fetch {
	next := c.sel
	next.Tariff = registry.Tariff(filterValue(string(tariff)))
	c.writeLocation(next)
	return c.change(next)
}

// SetStatus filters by status and returns to the first page.
func (c *Controller) SetStatus(status registry.Status) *Fetch {
	next := c.sel
	next.Status = status
	next.Page = 1
	return c.change(next)
}

// SetPageSize changes the page size. The page number is kept, even if it is
// now past the end. Sizes outside PageSizes are ignored.
func (c *Controller) SetPageSize(size int) *Fetch {
	if !ValidPageSize(size) {
		return nil
	}
	next := c.sel
	next.PageSize = size
	return c.change(next)
}

// NextPage advances one page if the last known page count allows it.
func (c *Controller) NextPage() *Fetch {
	if !c.CanNext() {
		return nil
	}
	next := c.sel
	next.Page++
	return c.change(next)
}

// PrevPage goes back one page unless already on the first.
func (c *Controller) PrevPage() *Fetch {
	if !c.CanPrev() {
		return nil
	}
	next := c.sel
	next.Page--
	return c.change(next)
}

// CanPrev reports whether PrevPage would move.
func (c *Controller) CanPrev() bool {
	return c.sel.Page > 1
}

// CanNext reports whether NextPage would move.
func (c *Controller) CanNext() bool {
	count := c.projector.PageCount()
	return count > 0 && c.sel.Page < count
}

// Refresh requests the current selection again. It does nothing while a
// fetch is outstanding, since that fetch already ends at the current
// selection.
func (c *Controller) Refresh() *Fetch {
	if c.closed || !c.mounted || c.inflight != nil {
		return nil
	}
	c.projector.Begin()
	return c.dispatch()
}

// Resolve accepts the result of a fetch. A result whose selection no longer
// matches is dropped and the current selection is fetched instead.
func (c *Controller) Resolve(res Result) *Fetch {
	if c.closed {
		c.logger.Debug("dropping result after close", "gen", res.Fetch.Gen)
		return nil
	}
	if c.inflight == nil || res.Fetch.Gen != c.inflight.Gen {
		c.logger.Debug("dropping unknown result", "gen", res.Fetch.Gen)
		return nil
	}
	c.inflight = nil

	if res.Fetch.Selection != c.sel {
		c.logger.Debug("dropping stale result",
			"gen", res.Fetch.Gen,
			"requested", res.Fetch.Selection.Query().Values().Encode(),
			"current", c.sel.Query().Values().Encode(),
		)
		return c.dispatch()
	}

	if res.Err != nil {
		c.logger.Warn("trip list fetch failed", "gen", res.Fetch.Gen, "error", res.Err)
	} else {
		c.logger.Debug("trip list committed",
			"gen", res.Fetch.Gen,
			"items", res.Page.ItemCount,
			"page", res.Fetch.Selection.Page,
		)
	}
	c.projector.Apply(res)
	return nil
}

// Drain runs f and every follow-up fetch to completion on the calling
// goroutine.
func (c *Controller) Drain(ctx context.Context, f *Fetch) {
	for f != nil {
		f = c.Resolve(c.projector.Fetch(ctx, *f))
	}
}

// NeedsRegions reports whether the region list has yet to be requested.
func (c *Controller) NeedsRegions() bool {
	return c.mounted && !c.closed && !c.regionsLoaded
}

// RegionsLoaded stores the region list. It is fetched once per mount; later
// calls are ignored.
func (c *Controller) RegionsLoaded(regions []registry.Region, err error) {
	if c.closed || c.regionsLoaded {
		return
	}
	c.regionsLoaded = true
	if err != nil {
		c.logger.Warn("region list fetch failed", "error", err)
		c.regionsErr = err
		return
	}
	c.regions = append([]registry.Region(nil), regions...)
}

// Regions returns the loaded regions.
func (c *Controller) Regions() []registry.Region {
	return append([]registry.Region(nil), c.regions...)
}

// RegionsMessage describes a failed region load, or "" when none failed.
func (c *Controller) RegionsMessage() string {
	if c.regionsErr == nil {
		return ""
	}
	return "Regions unavailable: " + registry.Message(c.regionsErr)
}

func (c *Controller) writeLocation(next Selection) {
	if c.closed || !c.mounted {
		return
	}
	current := c.nav.Location()
	updated := next.ToLocation(current)
	if updated != current {
		c.nav.Replace(updated)
	}
}

func (c *Controller) change(next Selection) *Fetch {
	if c.closed || !c.mounted || next == c.sel {
		return nil
	}
	c.sel = next
	c.projector.Begin()
	if c.inflight != nil {
		return nil
	}
	return c.dispatch()
}

func (c *Controller) dispatch() *Fetch {
	c.gen++
	f := Fetch{Gen: c.gen, Selection: c.sel}
	c.inflight = &f
	c.logger.Debug("trip list fetch", "gen", f.Gen, "query", f.Selection.Query().Values().Encode())
	return &f
}
