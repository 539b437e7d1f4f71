package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mindhaven/internal/model"
	"mindhaven/internal/scoring"
	"mindhaven/internal/service"
	"mindhaven/internal/transport/rest/middleware"
)

// AttemptHandler handles the attempt lifecycle endpoints
type AttemptHandler struct {
	attemptSvc *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptSvc *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptSvc: attemptSvc}
}

// StartAttemptRequest is the request body for opening an attempt
type StartAttemptRequest struct {
	AssessmentID string `json:"assessmentId"`
}

// SaveAnswerRequest is the request body for answering one question
type SaveAnswerRequest struct {
	Value int    `json:"value"`
	Text  string `json:"text,omitempty"`
}

// Start handles POST /v1/attempts
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req StartAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attempt, err := h.attemptSvc.Start(r.Context(), userID, req.AssessmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attempt)
}

// SaveAnswer handles PUT /v1/attempts/{attemptId}/answers/{questionId}
func (h *AttemptHandler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	vars := mux.Vars(r)

	var req SaveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attempt, err := h.attemptSvc.SaveAnswer(r.Context(), userID, vars["attemptId"], vars["questionId"],
		model.AnswerValue{Value: req.Value, Text: req.Text})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

// Submit handles POST /v1/attempts/{attemptId}/submit
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	attemptID := mux.Vars(r)["attemptId"]

	result, err := h.attemptSvc.Submit(r.Context(), userID, attemptID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /v1/attempts/{attemptId}
func (h *AttemptHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	attemptID := mux.Vars(r)["attemptId"]

	attempt, err := h.attemptSvc.Get(r.Context(), userID, attemptID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

// History handles GET /v1/history with an optional ?assessmentId= filter
func (h *AttemptHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var results []*model.AssessmentResult
	var err error
	if assessmentID := r.URL.Query().Get("assessmentId"); assessmentID != "" {
		results, err = h.attemptSvc.HistoryByAssessment(r.Context(), userID, assessmentID)
	} else {
		results, err = h.attemptSvc.History(r.Context(), userID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// writeServiceError maps service and engine errors onto HTTP statuses. The
// taxonomy matters to clients: incomplete means ask the user to finish,
// invalid answer means the client itself is broken.
func writeServiceError(w http.ResponseWriter, err error) {
	var incomplete *scoring.IncompleteResponseError
	var invalid *scoring.InvalidAnswerError

	switch {
	case errors.As(err, &incomplete):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":              "incomplete_response",
			"missingQuestionIds": incomplete.MissingQuestionIDs,
		})
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, service.ErrAssessmentNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAttemptOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAttemptFinished):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
