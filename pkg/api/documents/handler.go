package documents

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
	"finhealth/pkg/models"
)

// allowedExtensions is the upload allow-list. Spreadsheets are not readable
// here; they must be exported to CSV first.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".pdf":  true,
	".html": true,
	".htm":  true,
}

var validStatementTypes = map[models.StatementType]bool{
	models.StatementIncome:       true,
	models.StatementBalanceSheet: true,
	models.StatementCashFlow:     true,
}

// Handler holds dependencies for document upload and processing endpoints
type Handler struct {
	Companies *store.CompanyRepo
	Docs      *store.DocumentRepo
	Files     *store.FileStore
	Pipe      *pipeline.Orchestrator
}

func NewHandler(companies *store.CompanyRepo, docs *store.DocumentRepo, files *store.FileStore, pipe *pipeline.Orchestrator) *Handler {
	return &Handler{Companies: companies, Docs: docs, Files: files, Pipe: pipe}
}

func cors(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleUpload serves POST /api/documents/upload/{companyID}. The request is
// multipart with a "file" part and a "document_type" field.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	cors(w, "POST")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	companyID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/documents/upload/"))
	if err != nil {
		http.Error(w, "Invalid company id", http.StatusBadRequest)
		return
	}

	if _, err := h.Companies.GetByID(r.Context(), companyID); err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	docType := models.StatementType(r.FormValue("document_type"))
	if !validStatementTypes[docType] {
		http.Error(w, "Invalid document_type; want income_statement, balance_sheet or cash_flow", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file in request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		http.Error(w, fmt.Sprintf("File type %s not allowed; allowed: .csv, .pdf, .html", ext), http.StatusBadRequest)
		return
	}

	path, err := h.Files.Save(companyID, header.Filename, file)
	if err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	doc := &models.Document{
		CompanyID:    companyID,
		DocumentType: docType,
		FileName:     header.Filename,
		FilePath:     path,
		FileType:     strings.TrimPrefix(ext, "."),
	}
	if err := h.Docs.Create(r.Context(), doc); err != nil {
		h.Files.Remove(path)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

// HandleProcess serves POST /api/documents/process/{id}: runs the extraction
// pipeline over the stored file.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	cors(w, "POST")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/documents/process/"))
	if err != nil {
		http.Error(w, "Invalid document id", http.StatusBadRequest)
		return
	}

	data, err := h.Pipe.ProcessDocument(r.Context(), id)
	if err == pipeline.ErrAlreadyProcessed {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Document already processed",
			"data":    data,
		})
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error processing document: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Document processed successfully",
		"data":    data,
	})
}

// HandleCompanyDocuments serves GET /api/documents/company/{companyID}.
func (h *Handler) HandleCompanyDocuments(w http.ResponseWriter, r *http.Request) {
	cors(w, "GET")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	companyID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/documents/company/"))
	if err != nil {
		http.Error(w, "Invalid company id", http.StatusBadRequest)
		return
	}

	docs, err := h.Docs.ListByCompany(r.Context(), companyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	json.NewEncoder(w).Encode(docs)
}

// HandleDocument serves /api/documents/{id}: get on GET, delete on DELETE.
// Delete removes the database row first, then the stored file best effort.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	cors(w, "GET, DELETE")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/documents/"))
	if err != nil {
		http.Error(w, "Invalid document id", http.StatusBadRequest)
		return
	}

	doc, err := h.Docs.GetByID(r.Context(), id)
	if err == store.ErrNotFound {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(doc)

	case http.MethodDelete:
		if err := h.Docs.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := h.Files.Remove(doc.FilePath); err != nil {
			fmt.Printf("[DOCUMENTS] file cleanup failed for %s: %v\n", doc.FilePath, err)
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
