package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchwell/internal/service"
)

// SubscribeHandler handles newsletter and feedback endpoints
type SubscribeHandler struct {
	subscribeSvc *service.SubscribeService
}

// NewSubscribeHandler creates a new subscribe handler
func NewSubscribeHandler(subscribeSvc *service.SubscribeService) *SubscribeHandler {
	return &SubscribeHandler{subscribeSvc: subscribeSvc}
}

// SubscribeRequest is the request body for newsletter signups
type SubscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// FeedbackRequest is the request body for page feedback
type FeedbackRequest struct {
	Page    string `json:"page"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// Subscribe handles POST /v1/subscribe
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.subscribeSvc.Subscribe(r.Context(), req.Email, req.Source); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
}

// Feedback handles POST /v1/feedback
func (h *SubscribeHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.subscribeSvc.SubmitFeedback(r.Context(), req.Page, req.Message, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFeedback) || errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}
