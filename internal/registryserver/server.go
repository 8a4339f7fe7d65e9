package registryserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/carpool/internal/registry"
	"github.com/five82/carpool/internal/state"
)

const defaultPerPage = 10

type handler struct {
	store  *state.Store
	logger *slog.Logger
}

// NewRouter serves store over the registry's HTTP surface.
func NewRouter(store *state.Store, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handler{store: store, logger: logger.With("component", "registryserver")}

	r := gin.New()
	r.Use(requestID(), requestLogger(h.logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		h.logger.Warn("set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	r.GET("/regions", h.listRegions)
	trips := r.Group("/trips")
	trips.GET("", h.listTrips)
	trips.POST("", h.createTrip)
	trips.GET("/:id", h.getTrip)
	trips.PUT("/:id", h.replaceTrip)
	return r
}

// Serve runs h on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("registry listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("registry shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (h *handler) listRegions(c *gin.Context) {
	regions := h.store.Regions()
	if regions == nil {
		regions = []registry.Region{}
	}
	c.JSON(http.StatusOK, regions)
}

// pageResponse is the paginated envelope returned when _page is given.
type pageResponse struct {
	First int             `json:"first"`
	Prev  *int            `json:"prev"`
	Next  *int            `json:"next"`
	Last  int             `json:"last"`
	Pages int             `json:"pages"`
	Items int             `json:"items"`
	Data  []registry.Trip `json:"data"`
}

func (h *handler) listTrips(c *gin.Context) {
	filter := state.Filter{
		Region: c.Query("from"),
		Tariff: registry.Tariff(c.Query("tariff")),
		Status: registry.Status(c.Query("status")),
	}
	trips := h.store.List(filter)
	if trips == nil {
		trips = []registry.Trip{}
	}

	rawPage, paged := c.GetQuery("_page")
	if !paged {
		c.JSON(http.StatusOK, trips)
		return
	}
	page, err := positiveInt(rawPage, 1)
	if err != nil {
		respondError(c, http.StatusBadRequest, "_page: "+err.Error())
		return
	}
	perPage, err := positiveInt(c.Query("_per_page"), defaultPerPage)
	if err != nil {
		respondError(c, http.StatusBadRequest, "_per_page: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, paginate(trips, page, perPage))
}

func paginate(trips []registry.Trip, page, perPage int) pageResponse {
	items := len(trips)
	pages := items / perPage
	if items%perPage != 0 {
		pages++
	}
	resp := pageResponse{
		First: 1,
		Last:  max(pages, 1),
		Pages: pages,
		Items: items,
		Data:  []registry.Trip{},
	}
	if page > 1 {
		prev := page - 1
		resp.Prev = &prev
	}
	if page < pages {
		next := page + 1
		resp.Next = &next
	}
	// Pages past the end are empty; checked before multiplying so huge
	// page numbers cannot wrap start back into range.
	if page > pages {
		return resp
	}
	start := (page - 1) * perPage
	end := min(start+perPage, items)
	resp.Data = trips[start:end]
	return resp
}

func (h *handler) getTrip(c *gin.Context) {
	trip, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *handler) replaceTrip(c *gin.Context) {
	var doc registry.Trip
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, http.StatusBadRequest, "invalid trip document: "+err.Error())
		return
	}
	stored, err := h.store.Replace(c.Param("id"), doc)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.logger.Info("trip replaced", "request_id", getRequestID(c), "trip_id", stored.ID, "status", string(stored.Status))
	c.JSON(http.StatusOK, stored)
}

func (h *handler) createTrip(c *gin.Context) {
	var req registry.NewTrip
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid trip request: "+err.Error())
		return
	}
	created, err := h.store.Create(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Info("trip created", "request_id", getRequestID(c), "trip_id", created.ID)
	c.JSON(http.StatusCreated, created)
}

func (h *handler) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, state.ErrNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	respondError(c, http.StatusBadRequest, err.Error())
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       http.StatusText(status),
		"request_id": getRequestID(c),
	})
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
