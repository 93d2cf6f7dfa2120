package handler

import (
	"net/http"

	"matchwell/internal/service"
)

// GeoHandler handles postcode lookup endpoints
type GeoHandler struct {
	geoSvc *service.GeoService
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geoSvc *service.GeoService) *GeoHandler {
	return &GeoHandler{geoSvc: geoSvc}
}

// Lookup handles GET /v1/geo?postcode=. An unknown postcode or an
// unavailable upstream is found=false, never a 5xx — the directory
// just skips the region filter.
func (h *GeoHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	postcode := r.URL.Query().Get("postcode")
	if postcode == "" {
		writeError(w, http.StatusBadRequest, "postcode is required")
		return
	}

	result, err := h.geoSvc.Lookup(r.Context(), postcode)
	if err != nil || result == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found":  true,
		"result": result,
	})
}
