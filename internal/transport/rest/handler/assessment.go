package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"wellcheck/internal/model"
	"wellcheck/internal/service"
	"wellcheck/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// AssessmentHandler handles respondent session endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	reportSvc     *service.ReportService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService, reportSvc *service.ReportService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
		reportSvc:     reportSvc,
	}
}

// RecordAnswerRequest is the request body for recording one answer
type RecordAnswerRequest struct {
	Value *int `json:"value"`
}

// Catalog handles GET /v1/catalog
func (h *AssessmentHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assessmentSvc.Catalog())
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.assessmentSvc.Start(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.assessmentSvc.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// RecordAnswer handles PUT /v1/assessments/{id}/answers/{category}/{index}
func (h *AssessmentHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "question index must be an integer")
		return
	}

	var req RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	key := model.AnswerKey{CategoryID: vars["category"], Index: index}
	progress, err := h.assessmentSvc.RecordAnswer(r.Context(), middleware.GetSessionID(r.Context()), key, *req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Progress handles GET /v1/assessments/{id}/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.assessmentSvc.Progress(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Submit handles POST /v1/assessments/{id}/submit
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.assessmentSvc.Submit(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// Report handles GET /v1/assessments/{id}/report
func (h *AssessmentHandler) Report(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.reportSvc.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// Discard handles DELETE /v1/assessments/{id}
func (h *AssessmentHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.assessmentSvc.Discard(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
