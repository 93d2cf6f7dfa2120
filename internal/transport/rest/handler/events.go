package handler

import (
	"encoding/json"
	"net/http"

	"matchwell/internal/model"
	"matchwell/internal/service"
)

// maxEventBatch bounds one ingest request.
const maxEventBatch = 50

// EventsHandler handles analytics ingest
type EventsHandler struct {
	sink *service.EventSink
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(sink *service.EventSink) *EventsHandler {
	return &EventsHandler{sink: sink}
}

// EventsRequest is the request body for batched analytics events
type EventsRequest struct {
	Events []struct {
		Name  string            `json:"name"`
		Props map[string]string `json:"props,omitempty"`
	} `json:"events"`
}

// Ingest handles POST /v1/events. Accepted events are queued; the
// response does not wait for delivery.
func (h *EventsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req EventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Events) == 0 {
		writeError(w, http.StatusBadRequest, "no events")
		return
	}
	if len(req.Events) > maxEventBatch {
		writeError(w, http.StatusBadRequest, "too many events in one batch")
		return
	}

	accepted := 0
	for _, e := range req.Events {
		if e.Name == "" {
			continue
		}
		h.sink.Enqueue(model.Event{Name: e.Name, Props: e.Props})
		accepted++
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"accepted": accepted})
}
