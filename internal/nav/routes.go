package nav

import "strings"

// Page identifies a screen of the client.
type Page int

const (
	PageNotFound Page = iota
	PageHome
	PageTrips
	PageNewTrip
	PageTripDetails
)

// Roles that appear in paths.
const (
	RoleDriver    = "driver"
	RolePassenger = "passenger"
)

// Route is a location resolved to a page and its path parameters.
type Route struct {
	Page   Page
	Role   string
	TripID string
}

// Match resolves a location's path.
//
//	/                              home
//	/trips/{passenger|driver}      trip list
//	/new-trip                      new trip form
//	/{passenger|driver}/trip-details/{id}
func Match(loc Location) Route {
	parts := strings.Split(strings.Trim(cleanPath(loc.Path), "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "":
		return Route{Page: PageHome}
	case len(parts) == 1 && parts[0] == "new-trip":
		return Route{Page: PageNewTrip, Role: RolePassenger}
	case len(parts) == 2 && parts[0] == "trips" && validRole(parts[1]):
		return Route{Page: PageTrips, Role: parts[1]}
	case len(parts) == 3 && validRole(parts[0]) && parts[1] == "trip-details" && parts[2] != "":
		return Route{Page: PageTripDetails, Role: parts[0], TripID: parts[2]}
	default:
		return Route{Page: PageNotFound}
	}
}

// TripsPath returns the list location for role.
func TripsPath(role string) Location {
	return WithPath("/trips/" + role)
}

// DetailsPath returns the details location for a trip viewed as role.
func DetailsPath(role, id string) Location {
	return WithPath("/" + role + "/trip-details/" + id)
}

// NewTripPath is the trip creation form.
var NewTripPath = WithPath("/new-trip")

func validRole(s string) bool {
	return s == RoleDriver || s == RolePassenger
}
