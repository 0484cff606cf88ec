package assessments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
	"finhealth/pkg/models"
)

// Handler holds dependencies for assessment endpoints
type Handler struct {
	Repo *store.AssessmentRepo
	Pipe *pipeline.Orchestrator
}

func NewHandler(repo *store.AssessmentRepo, pipe *pipeline.Orchestrator) *Handler {
	return &Handler{Repo: repo, Pipe: pipe}
}

type GenerateRequest struct {
	CompanyID int    `json:"company_id"`
	Language  string `json:"language"`
}

// HandleGenerate serves POST /api/assessments/generate: runs the full
// assessment pipeline for a company and returns the persisted record.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.Pipe.RunAssessment(r.Context(), req.CompanyID, req.Language)
	if err == pipeline.ErrNoMetrics {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error generating assessment: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(assessment)
}

// HandleCompanyAssessments serves GET /api/assessments/company/{companyID},
// newest first.
func (h *Handler) HandleCompanyAssessments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	companyID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/assessments/company/"))
	if err != nil {
		http.Error(w, "Invalid company id", http.StatusBadRequest)
		return
	}

	assessments, err := h.Repo.ListByCompany(r.Context(), companyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if assessments == nil {
		assessments = []*models.Assessment{}
	}
	json.NewEncoder(w).Encode(assessments)
}

// HandleAssessment serves GET /api/assessments/{id}.
func (h *Handler) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	if id == "" {
		http.Error(w, "Invalid assessment id", http.StatusBadRequest)
		return
	}

	assessment, err := h.Repo.GetByID(r.Context(), id)
	if err == store.ErrNotFound {
		http.Error(w, "Assessment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(assessment)
}
