package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"matchwell/internal/model"
	"matchwell/internal/payload"
	"matchwell/internal/service"
)

// ResultsPath is the canonical results route the frontend serves.
const ResultsPath = "/results"

// ResultsHandler handles results decoding, sharing, and the legacy
// redirect
type ResultsHandler struct {
	quizSvc *service.QuizService
	sink    *service.EventSink
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(quizSvc *service.QuizService, sink *service.EventSink) *ResultsHandler {
	return &ResultsHandler{quizSvc: quizSvc, sink: sink}
}

// resultsResponse is the decoded-results envelope. A failed or absent
// decode is the same response with found=false — never an error status.
type resultsResponse struct {
	Found   bool                    `json:"found"`
	Payload *model.ResultsPayloadV1 `json:"payload,omitempty"`
}

// GetResults handles GET /v1/results?r=<encoded>
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	encoded := r.URL.Query().Get(payload.QueryParam)
	p := payload.Decode(encoded)
	if p == nil {
		writeJSON(w, http.StatusOK, resultsResponse{Found: false})
		return
	}

	if h.sink != nil {
		props := map[string]string{}
		if len(p.Top) > 0 {
			props["top"] = string(p.Top[0])
		}
		if p.Meta != nil && p.Meta.Source != "" {
			props["source"] = p.Meta.Source
		}
		h.sink.Enqueue(model.Event{Name: model.EventResultsViewed, Props: props})
	}

	writeJSON(w, http.StatusOK, resultsResponse{Found: true, Payload: p})
}

// LegacyRedirect handles GET /r/{blob}: an old-format share link whose
// path segment is URL-encoded JSON. Usable blobs redirect to the
// canonical results URL with a freshly encoded payload; garbage
// redirects to the bare results route.
func (h *ResultsHandler) LegacyRedirect(w http.ResponseWriter, r *http.Request) {
	blob := mux.Vars(r)["blob"]

	p := payload.DecodeLegacy(blob)
	if p == nil {
		http.Redirect(w, r, ResultsPath, http.StatusFound)
		return
	}

	encoded, err := payload.Encode(p)
	if err != nil {
		http.Redirect(w, r, ResultsPath, http.StatusFound)
		return
	}

	if h.sink != nil {
		h.sink.Enqueue(model.Event{Name: model.EventLegacyRedirect})
	}

	query := url.Values{payload.QueryParam: {encoded}}
	http.Redirect(w, r, ResultsPath+"?"+query.Encode(), http.StatusFound)
}

// ShareRequest is the request body for creating a share code
type ShareRequest struct {
	Encoded string `json:"encoded"`
}

// Share handles POST /v1/results/share
func (h *ResultsHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code, err := h.quizSvc.Share(r.Context(), req.Encoded)
	if err != nil {
		if errors.Is(err, service.ErrBadPayload) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"code": code})
}

// ResolveShare handles GET /v1/results/s/{code}. An unknown or expired
// code is found=false, the same empty state as a missing URL parameter.
func (h *ResultsHandler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	encoded, err := h.quizSvc.Resolve(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := payload.Decode(encoded)
	if p == nil {
		writeJSON(w, http.StatusOK, resultsResponse{Found: false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found":   true,
		"encoded": encoded,
		"payload": p,
	})
}
