package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchwell/internal/model"
	"matchwell/internal/service"
)

// QuizHandler handles quiz submission endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// ScoreRequest is the request body for single-tier submissions
type ScoreRequest struct {
	Answers model.Answers     `json:"answers"`
	Source  string            `json:"source,omitempty"`
	UTM     map[string]string `json:"utm,omitempty"`
}

// CombinedRequest is the request body for the refine flow
type CombinedRequest struct {
	Tier1  model.Answers     `json:"tier1"`
	Tier2  model.Answers     `json:"tier2,omitempty"`
	Source string            `json:"source,omitempty"`
	UTM    map[string]string `json:"utm,omitempty"`
}

// GetTier1Questions handles GET /v1/quiz/tier1/questions
func (h *QuizHandler) GetTier1Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quizSvc.Tier1Questions())
}

// GetTier2Questions handles GET /v1/quiz/tier2/questions
func (h *QuizHandler) GetTier2Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quizSvc.Tier2Questions())
}

// ScoreTier1 handles POST /v1/quiz/tier1
func (h *QuizHandler) ScoreTier1(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.quizSvc.ScoreTier1(r.Context(), service.Submission{
		Answers: req.Answers,
		Source:  req.Source,
		UTM:     req.UTM,
	})
	if err != nil {
		writeScoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// ScoreTier2 handles POST /v1/quiz/tier2
func (h *QuizHandler) ScoreTier2(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.quizSvc.ScoreTier2(r.Context(), service.Submission{
		Answers: req.Answers,
		Source:  req.Source,
		UTM:     req.UTM,
	})
	if err != nil {
		writeScoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// ScoreCombined handles POST /v1/quiz/combined
func (h *QuizHandler) ScoreCombined(w http.ResponseWriter, r *http.Request) {
	var req CombinedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.quizSvc.ScoreCombined(r.Context(), req.Tier1, req.Tier2, service.Submission{
		Source: req.Source,
		UTM:    req.UTM,
	})
	if err != nil {
		writeScoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func writeScoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrTooFewAnswers) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
