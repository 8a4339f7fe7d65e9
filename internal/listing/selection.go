package listing

import (
	"slices"
	"strings"

	"github.com/five82/carpool/internal/nav"
	"github.com/five82/carpool/internal/registry"
)

// Location query keys that carry the persisted filters.
const (
	RegionParam = "from"
	TariffParam = "tariff"
)

// DefaultPageSize is used when no other size is configured.
const DefaultPageSize = 10

// PageSizes are the page sizes the list offers.
var PageSizes = []int{5, 10, 20}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// Selection fully determines which trips are listed. Empty Region or Tariff
// means the filter is absent. Selection is comparable with ==.
type Selection struct {
	Region   string
	Tariff   registry.Tariff
	Status   registry.Status
	Page     int
	PageSize int
}

// DefaultSelection is the selection of a freshly opened list.
func DefaultSelection(pageSize int) Selection {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return Selection{
		Status:   registry.StatusPlanned,
		Page:     1,
		PageSize: pageSize,
	}
}

// Query converts the selection into a registry request.
func (s Selection) Query() registry.TripQuery {
	return registry.TripQuery{
		Region:  s.Region,
		Tariff:  s.Tariff,
		Status:  s.Status,
		Page:    s.Page,
		PerPage: s.PageSize,
	}
}

// FromLocation returns s with Region and Tariff taken from loc. Missing or
// blank parameters clear the filter. Other values are kept verbatim and are
// not validated.
func (s Selection) FromLocation(loc nav.Location) Selection {
	s.Region = filterValue(loc.Get(RegionParam))
	s.Tariff = registry.Tariff(filterValue(loc.Get(TariffParam)))
	return s
}

// filterValue maps a whitespace-only value to "" so it reads as absent,
// the same rule nav.Location.With applies when writing.
func filterValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// ToLocation writes Region and Tariff into loc, removing absent filters.
// Status and pagination are not persisted.
func (s Selection) ToLocation(loc nav.Location) nav.Location {
	return loc.With(RegionParam, s.Region).With(TariffParam, string(s.Tariff))
}
