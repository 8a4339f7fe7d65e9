package listing

import (
	"context"
	"fmt"

	"github.com/five82/carpool/internal/registry"
)

// Lister is the part of the registry the projector calls.
type Lister interface {
	ListTrips(ctx context.Context, query registry.TripQuery) (registry.TripPage, error)
}

// Fetch is a ticket for one list request. It carries the selection that
// produced it so the result can be checked against the selection current
// when it arrives.
type Fetch struct {
	Gen       uint64
	Selection Selection
}

// Result is the outcome of a Fetch.
type Result struct {
	Fetch Fetch
	Page  registry.TripPage
	Err   error
}

// View is what the list screen renders.
type View struct {
	Loading   bool
	Err       error
	Message   string
	Trips     []registry.Trip
	Page      int
	PageCount int
	ItemCount int
	HasPage   bool
}

// Empty reports a successful fetch that matched nothing.
func (v View) Empty() bool {
	return v.HasPage && v.ItemCount == 0
}

// Projector turns one selection into one registry request and holds the
// committed page.
type Projector struct {
	lister Lister

	loading   bool
	err       error
	page      registry.TripPage
	selection Selection
	hasPage   bool
	pageCount int
}

// NewProjector builds a projector over lister.
func NewProjector(lister Lister) *Projector {
	return &Projector{lister: lister}
}

// Fetch performs the request for f. It touches no projector state and may
// run on any goroutine.
func (p *Projector) Fetch(ctx context.Context, f Fetch) Result {
	if p.lister == nil {
		return Result{Fetch: f, Err: fmt.Errorf("list trips: no registry configured")}
	}
	page, err := p.lister.ListTrips(ctx, f.Selection.Query())
	return Result{Fetch: f, Page: page, Err: err}
}

// Begin marks a request as started. The view shows loading until Apply.
func (p *Projector) Begin() {
	p.loading = true
	p.err = nil
}

// Apply commits a result. A failure clears the page so the error replaces
// the content entirely.
func (p *Projector) Apply(res Result) {
	p.loading = false
	if res.Err != nil {
		p.err = res.Err
		p.page = registry.TripPage{}
		p.hasPage = false
		p.pageCount = 0
		return
	}
	p.err = nil
	p.page = res.Page
	p.selection = res.Fetch.Selection
	p.hasPage = true
	p.pageCount = PageCount(res.Page.ItemCount, res.Fetch.Selection.PageSize)
}

// Loading reports whether a request is outstanding.
func (p *Projector) Loading() bool { return p.loading }

// PageCount returns the page count of the last committed page, or zero.
func (p *Projector) PageCount() int { return p.pageCount }

// CanPrev reports whether a previous page exists for the committed page.
func (p *Projector) CanPrev() bool {
	return p.hasPage && p.selection.Page > 1
}

// CanNext reports whether a following page exists for the committed page.
func (p *Projector) CanNext() bool {
	return p.hasPage && p.pageCount > 0 && p.selection.Page < p.pageCount
}

// View snapshots the projector for rendering.
func (p *Projector) View() View {
	v := View{
		Loading:   p.loading,
		Err:       p.err,
		Message:   registry.Message(p.err),
		PageCount: p.pageCount,
	}
	if p.loading || p.err != nil || !p.hasPage {
		return v
	}
	v.HasPage = true
	v.Trips = p.page.Data
	v.Page = p.selection.Page
	v.ItemCount = p.page.ItemCount
	return v
}

// PageCount is ceil(items / pageSize).
func PageCount(items, pageSize int) int {
	if items <= 0 || pageSize <= 0 {
		return 0
	}
	return (items + pageSize - 1) / pageSize
}
