// Package listing drives the trip list: which trips are shown, and keeping
// that choice in step with the navigable location.
//
// A Controller owns a Selection (region, tariff, status, page, page size).
// Region and tariff are mirrored into the location as the "from" and
// "tariff" query parameters so a location reproduces the list it names.
// Status and pagination stay with the controller and are not written to the
// location.
//
// The Projector performs the registry request for a selection and holds the
// committed page. Requests run outside the controller: the controller hands
// out Fetch tickets and accepts Results, committing a result only when the
// selection it was made for is still current.
package listing
