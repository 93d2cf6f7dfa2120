package handler

import (
	"net/http"
	"strconv"

	"matchwell/internal/cache"
	"matchwell/internal/model"
	"matchwell/internal/service"
)

// ProviderHandler handles directory and stats endpoints
type ProviderHandler struct {
	directorySvc *service.DirectoryService
	geoSvc       *service.GeoService
	stats        cache.StatsCache
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(directorySvc *service.DirectoryService, geoSvc *service.GeoService, stats cache.StatsCache) *ProviderHandler {
	return &ProviderHandler{
		directorySvc: directorySvc,
		geoSvc:       geoSvc,
		stats:        stats,
	}
}

// List handles GET /v1/providers. The modality filter usually comes
// from a decoded results payload's top entry; a postcode is resolved
// to a region when no region is given.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.DirectoryQuery{
		Modality: model.Modality(q.Get("modality")),
		Region:   q.Get("region"),
	}
	if query.Modality != "" && !query.Modality.Valid() {
		writeError(w, http.StatusBadRequest, "unknown modality")
		return
	}

	if query.Region == "" && q.Get("postcode") != "" {
		geo, err := h.geoSvc.Lookup(r.Context(), q.Get("postcode"))
		if err == nil && geo != nil {
			query.Region = geo.Region
		}
	}

	if v := q.Get("telehealth"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "telehealth must be a boolean")
			return
		}
		query.Telehealth = &b
	}
	if v := q.Get("acceptingNew"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "acceptingNew must be a boolean")
			return
		}
		query.AcceptingNew = &b
	}

	result, err := h.directorySvc.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// TopModalities handles GET /v1/stats/modalities
func (h *ProviderHandler) TopModalities(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	counts, err := h.stats.TopModalities(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"modalities": counts})
}
