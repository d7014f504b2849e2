package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/punchamoorthee/catalogops/internal/service"
	"go.uber.org/zap"
)

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// Catalog is the service behind one collection endpoint.
type Catalog[R any, F any] interface {
	List(ctx context.Context) ([]R, error)
	Get(ctx context.Context, id int64) (R, error)
	Create(ctx context.Context, form F) (R, error)
	Update(ctx context.Context, id int64, form F) (R, error)
	Delete(ctx context.Context, id int64) error
}

// Handler serves one record collection under a base path.
type Handler[R any, F any] struct {
	path    string
	catalog Catalog[R, F]
	log     *zap.Logger
}

func NewHandler[R any, F any](path string, catalog Catalog[R, F], log *zap.Logger) *Handler[R, F] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler[R, F]{path: path, catalog: catalog, log: log}
}

// Register mounts the collection routes on r.
func (h *Handler[R, F]) Register(r *mux.Router) {
	r.HandleFunc(h.path, h.List).Methods("GET")
	r.HandleFunc(h.path, h.Create).Methods("POST")
	r.HandleFunc(h.path+"/{id}", h.Get).Methods("GET")
	r.HandleFunc(h.path+"/{id}", h.Update).Methods("PUT")
	r.HandleFunc(h.path+"/{id}", h.Delete).Methods("DELETE")
}

func (h *Handler[R, F]) List(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("GET", h.path))
	defer timer.ObserveDuration()

	list, err := h.catalog.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "GET", h.path)
		return
	}
	h.respondJSON(w, http.StatusOK, list, "GET", h.path)
}

func (h *Handler[R, F]) Create(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", h.path))
	defer timer.ObserveDuration()

	var form F
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", h.path)
		return
	}

	rec, err := h.catalog.Create(r.Context(), form)
	if err != nil {
		h.fail(w, r, err, "POST", h.path)
		return
	}
	h.respondJSON(w, http.StatusCreated, rec, "POST", h.path)
}

func (h *Handler[R, F]) Get(w http.ResponseWriter, r *http.Request) {
	endpoint := h.path + "/{id}"
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("GET", endpoint))
	defer timer.ObserveDuration()

	id, ok := h.parseID(w, r, "GET")
	if !ok {
		return
	}
	rec, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "GET", endpoint)
		return
	}
	h.respondJSON(w, http.StatusOK, rec, "GET", endpoint)
}

func (h *Handler[R, F]) Update(w http.ResponseWriter, r *http.Request) {
	endpoint := h.path + "/{id}"
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("PUT", endpoint))
	defer timer.ObserveDuration()

	id, ok := h.parseID(w, r, "PUT")
	if !ok {
		return
	}
	var form F
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "PUT", endpoint)
		return
	}

	rec, err := h.catalog.Update(r.Context(), id, form)
	if err != nil {
		h.fail(w, r, err, "PUT", endpoint)
		return
	}
	h.respondJSON(w, http.StatusOK, rec, "PUT", endpoint)
}

func (h *Handler[R, F]) Delete(w http.ResponseWriter, r *http.Request) {
	endpoint := h.path + "/{id}"
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("DELETE", endpoint))
	defer timer.ObserveDuration()

	id, ok := h.parseID(w, r, "DELETE")
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "DELETE", endpoint)
		return
	}
	httpReqTotal.WithLabelValues("DELETE", endpoint, strconv.Itoa(http.StatusNoContent)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[R, F]) parseID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid id", method, h.path+"/{id}")
		return 0, false
	}
	return id, true
}

// fail maps service errors onto status codes.
func (h *Handler[R, F]) fail(w http.ResponseWriter, r *http.Request, err error, method, endpoint string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "Not Found", method, endpoint)
	case errors.Is(err, service.ErrInvalid):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), method, endpoint)
	default:
		h.log.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Internal Server Error", method, endpoint)
	}
}

// Helpers
func (h *Handler[R, F]) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler[R, F]) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}
