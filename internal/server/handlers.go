package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/service"
)

// statusClientClosedRequest is the nginx convention for a client that went
// away before the response was ready.
const statusClientClosedRequest = 499

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger    *slog.Logger
	service   *service.RouteService
	scenarios *service.ScenarioRunner
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.RouteService, scenarios *service.ScenarioRunner) *APIHandlers {
	return &APIHandlers{
		logger:    logger,
		service:   svc,
		scenarios: scenarios,
	}
}

type distanceResponse struct {
	Distance domain.Distance `json:"distance"`
}

type routesResponse struct {
	Routes []domain.Path `json:"routes"`
}

type shortestResponse struct {
	ShortestDistance domain.Distance `json:"shortestDistance"`
	Path             domain.Path     `json:"path,omitempty"`
}

type boundedRoute struct {
	Path     string          `json:"path"`
	Stops    domain.Path     `json:"stops"`
	Distance domain.Distance `json:"distance"`
}

type boundedRoutesResponse struct {
	Routes []boundedRoute `json:"routes"`
}

type networkResponse struct {
	Towns       []domain.NodeID `json:"towns"`
	Edges       []domain.Edge   `json:"edges"`
	Fingerprint string          `json:"fingerprint"`
}

type scenarioResult struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Expected    string `json:"expected"`
	Actual      string `json:"actual"`
	Passed      bool   `json:"passed"`
	Error       string `json:"error,omitempty"`
}

type scenariosResponse struct {
	Passed    int              `json:"passed"`
	Total     int              `json:"total"`
	Scenarios []scenarioResult `json:"scenarios"`
}

func (h *APIHandlers) handleDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	path, err := parseDistanceQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.service.Distance(r.Context(), path)
	if err != nil {
		h.respondError(w, r, "compute distance", err)
		return
	}
	respondJSON(w, http.StatusOK, distanceResponse{Distance: d})
}

func (h *APIHandlers) handleMaxStops(w http.ResponseWriter, r *http.Request) {
	h.handleStops(w, r, "maxStops", h.service.RoutesWithMaxStops)
}

func (h *APIHandlers) handleExactStops(w http.ResponseWriter, r *http.Request) {
	h.handleStops(w, r, "exactStops", h.service.RoutesWithExactStops)
}

type stopsQueryFn func(ctx context.Context, start, end domain.NodeID, stops int) ([]domain.Path, error)

func (h *APIHandlers) handleStops(w http.ResponseWriter, r *http.Request, param string, query stopsQueryFn) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q, err := parseStopsQuery(r.URL.Query(), param)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	routes, err := query(r.Context(), domain.NodeID(q.Start), domain.NodeID(q.End), q.Stops)
	if err != nil {
		h.respondError(w, r, "enumerate routes", err)
		return
	}
	if routes == nil {
		routes = []domain.Path{}
	}
	respondJSON(w, http.StatusOK, routesResponse{Routes: routes})
}

func (h *APIHandlers) handleShortest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q, err := parseEndpointsQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	route, err := h.service.ShortestRoute(r.Context(), domain.NodeID(q.Start), domain.NodeID(q.End))
	if err != nil {
		h.respondError(w, r, "find shortest route", err)
		return
	}

	status := http.StatusOK
	if !route.Distance.Exists() {
		status = http.StatusNotFound
	}
	respondJSON(w, status, shortestResponse{ShortestDistance: route.Distance, Path: route.Path})
}

func (h *APIHandlers) handleWithinDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q, err := parseDistanceBoundQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	routes, err := h.service.RoutesWithinDistance(r.Context(), domain.NodeID(q.Start), domain.NodeID(q.End), q.MaxDistance)
	if err != nil {
		h.respondError(w, r, "enumerate routes", err)
		return
	}

	response := boundedRoutesResponse{Routes: make([]boundedRoute, 0, len(routes))}
	for _, route := range routes {
		response.Routes = append(response.Routes, boundedRoute{
			Path:     route.Path.String(),
			Stops:    route.Path,
			Distance: route.Distance,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	summary := h.service.Network()
	etag := `"` + summary.Fingerprint + `"`
	w.Header().Set("ETag", etag)
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, networkResponse{
		Towns:       summary.Towns,
		Edges:       summary.Edges,
		Fingerprint: summary.Fingerprint,
	})
}

func (h *APIHandlers) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if h.scenarios == nil {
		writeError(w, http.StatusNotFound, "scenarios are not available")
		return
	}

	results, err := h.scenarios.Run(r.Context(), service.ReferenceScenarios())
	if err != nil {
		h.respondError(w, r, "run scenarios", err)
		return
	}

	response := scenariosResponse{
		Total:     len(results),
		Scenarios: make([]scenarioResult, 0, len(results)),
	}
	for _, res := range results {
		item := scenarioResult{
			ID:          res.ID,
			Description: res.Description,
			Expected:    res.Expected,
			Actual:      res.Actual,
			Passed:      res.Passed,
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		if res.Passed {
			response.Passed++
		}
		response.Scenarios = append(response.Scenarios, item)
	}
	respondJSON(w, http.StatusOK, response)
}

// respondError maps service errors onto HTTP statuses. Unexpected failures are
// logged and reported with a generic message.
func (h *APIHandlers) respondError(w http.ResponseWriter, r *http.Request, action string, err error) {
	var invalid *domain.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, domain.ErrSearchBudgetExceeded):
		writeError(w, http.StatusUnprocessableEntity, "search budget exceeded; narrow the query bound")
	case errors.Is(err, context.Canceled):
		h.logger.InfoContext(r.Context(), "request cancelled", "action", action, "request_id", RequestID(r.Context()))
		writeError(w, statusClientClosedRequest, "request cancelled")
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+action, "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
