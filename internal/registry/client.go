package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API is the set of registry operations the controllers depend on.
// It is implemented by *Client and can be faked in tests.
type API interface {
	ListTrips(ctx context.Context, query TripQuery) (TripPage, error)
	GetTrip(ctx context.Context, id string) (Trip, error)
	UpdateTripStatus(ctx context.Context, id string, updated Trip) (Trip, error)
	ListRegions(ctx context.Context) ([]Region, error)
	CreateTrip(ctx context.Context, trip NewTrip) (Trip, error)
}

var _ API = (*Client)(nil)

// Client talks to the trip registry over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultBaseURL is where a locally running registry listens.
	DefaultBaseURL = "http://localhost:3000"
	// Version is reported in the User-Agent header.
	Version = "0.1"

	requestIDHeader = "X-Request-ID"
)

// NewClient builds a Client for the registry at baseURL. A zero timeout
// leaves requests bounded only by their context. A nil logger discards
// request logs.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: "carpool/" + Version,
		logger:    logger.With("component", "registry"),
	}, nil
}

// BaseURL returns the normalised registry address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// TripQuery selects one page of trips. Empty fields are left out of the
// request entirely.
type TripQuery struct {
	Region  string
	Tariff  Tariff
	Status  Status
	Page    int
	PerPage int
}

// Values encodes the query using the registry's parameter names.
func (q TripQuery) Values() url.Values {
	values := url.Values{}
	if strings.TrimSpace(q.Region) != "" {
		values.Set("from", q.Region)
	}
	if strings.TrimSpace(string(q.Tariff)) != "" {
		values.Set("tariff", string(q.Tariff))
	}
	if status := strings.TrimSpace(string(q.Status)); status != "" {
		values.Set("status", status)
	}
	if q.Page > 0 {
		values.Set("_page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("_per_page", strconv.Itoa(q.PerPage))
	}
	return values
}

// ListTrips fetches one page of trips matching query.
func (c *Client) ListTrips(ctx context.Context, query TripQuery) (TripPage, error) {
	const op = "list trips"
	rel := &url.URL{Path: "/trips", RawQuery: query.Values().Encode()}
	res, err := c.do(ctx, op, http.MethodGet, rel, nil)
	if err != nil {
		return TripPage{}, err
	}
	if !res.ok() {
		return TripPage{}, &RegistryError{Op: op, StatusCode: res.status}
	}
	var env pageEnvelope
	if err := res.decode(op, &env); err != nil {
		return TripPage{}, err
	}
	requested := query.Page
	if requested <= 0 {
		requested = 1
	}
	return env.page(requested), nil
}

// GetTrip fetches a single trip. Any non-success status is reported as
// *NotFoundError.
func (c *Client) GetTrip(ctx context.Context, id string) (Trip, error) {
	const op = "get trip"
	res, err := c.do(ctx, op, http.MethodGet, tripPath(id), nil)
	if err != nil {
		return Trip{}, err
	}
	if !res.ok() {
		return Trip{}, &NotFoundError{ID: id, StatusCode: res.status}
	}
	var trip Trip
	if err := res.decode(op, &trip); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

// UpdateTripStatus replaces the stored trip with updated and returns the
// registry's copy of the document.
func (c *Client) UpdateTripStatus(ctx context.Context, id string, updated Trip) (Trip, error) {
	const op = "update trip"
	if updated.ID == "" {
		updated.ID = id
	}
	res, err := c.do(ctx, op, http.MethodPut, tripPath(id), updated)
	if err != nil {
		return Trip{}, err
	}
	if !res.ok() {
		return Trip{}, &UpdateError{ID: id, StatusCode: res.status}
	}
	if len(bytes.TrimSpace(res.body)) == 0 {
		return updated, nil
	}
	var stored Trip
	if err := res.decode(op, &stored); err != nil {
		return Trip{}, err
	}
	return stored, nil
}

// ListRegions fetches the region reference list.
func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	const op = "list regions"
	res, err := c.do(ctx, op, http.MethodGet, &url.URL{Path: "/regions"}, nil)
	if err != nil {
		return nil, err
	}
	if !res.ok() {
		return nil, &RegistryError{Op: op, StatusCode: res.status}
	}
	var regions []Region
	if err := res.decode(op, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// CreateTrip submits a new trip request.
func (c *Client) CreateTrip(ctx context.Context, trip NewTrip) (Trip, error) {
	const op = "create trip"
	res, err := c.do(ctx, op, http.MethodPost, &url.URL{Path: "/trips"}, trip)
	if err != nil {
		return Trip{}, err
	}
	if !res.ok() {
		return Trip{}, &RegistryError{Op: op, StatusCode: res.status}
	}
	var created Trip
	if err := res.decode(op, &created); err != nil {
		return Trip{}, err
	}
	return created, nil
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r response) decode(op string, dest any) error {
	if err := json.Unmarshal(r.body, dest); err != nil {
		return &RegistryError{Op: op, StatusCode: r.status, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method string, rel *url.URL, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With("request_id", requestID, "method", method, "path", rel.String())
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("registry request failed", "error", err)
		return response{}, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("registry response truncated", "status", resp.StatusCode, "error", err)
		return response{}, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug("registry request",
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"bytes", len(data),
	)
	return response{status: resp.StatusCode, body: data}, nil
}

// tripPath keeps id as a single path segment. Slashes are escaped, and dot
// segments are escaped so reference resolution cannot collapse them.
func tripPath(id string) *url.URL {
	segment := url.PathEscape(id)
	if strings.Trim(id, ".") == "" {
		segment = strings.ReplaceAll(segment, ".", "%2E")
	}
	return &url.URL{Path: "/trips/" + id, RawPath: "/trips/" + segment}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse registry url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse registry url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
