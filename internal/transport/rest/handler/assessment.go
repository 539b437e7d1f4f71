package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"mindhaven/internal/model"
	"mindhaven/internal/service"
)

// AssessmentHandler handles catalog browsing endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// List handles GET /v1/assessments with an optional ?category= filter
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var defs []*model.AssessmentDefinition
	if cat := r.URL.Query().Get("category"); cat != "" {
		defs = h.assessmentSvc.ListByCategory(model.Category(cat))
	} else {
		defs = h.assessmentSvc.List()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": defs})
}

// Get handles GET /v1/assessments/{assessmentId}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["assessmentId"]

	def, ok := h.assessmentSvc.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}

	writeJSON(w, http.StatusOK, def)
}
