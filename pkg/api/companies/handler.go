package companies

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"finhealth/pkg/core/store"
	"finhealth/pkg/models"
)

// Handler holds dependencies for company CRUD endpoints
type Handler struct {
	Repo *store.CompanyRepo
}

func NewHandler(repo *store.CompanyRepo) *Handler {
	return &Handler{Repo: repo}
}

type CompanyRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
}

var validIndustries = map[models.IndustryType]bool{
	models.IndustryManufacturing: true,
	models.IndustryRetail:        true,
	models.IndustryAgriculture:   true,
	models.IndustryServices:      true,
	models.IndustryLogistics:     true,
	models.IndustryEcommerce:     true,
	models.IndustryHealthcare:    true,
	models.IndustryTechnology:    true,
}

// HandleCompanies serves /api/companies: list on GET, create on POST.
func (h *Handler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		companies, err := h.Repo.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if companies == nil {
			companies = []*models.Company{}
		}
		json.NewEncoder(w).Encode(companies)

	case http.MethodPost:
		var req CompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		company, err := companyFromRequest(&req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.Repo.Create(r.Context(), company); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(company)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCompany serves /api/companies/{id}: get, update, delete.
func (h *Handler) HandleCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/companies/"))
	if err != nil {
		http.Error(w, "Invalid company id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		company, err := h.Repo.GetByID(r.Context(), id)
		if err == store.ErrNotFound {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(company)

	case http.MethodPut:
		var req CompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		company, err := companyFromRequest(&req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		company.ID = id
		if err := h.Repo.Update(r.Context(), company); err != nil {
			if err == store.ErrNotFound {
				http.Error(w, "Company not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(company)

	case http.MethodDelete:
		if err := h.Repo.Delete(r.Context(), id); err != nil {
			if err == store.ErrNotFound {
				http.Error(w, "Company not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func companyFromRequest(req *CompanyRequest) (*models.Company, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errBadField("name is required")
	}
	industry := models.IndustryType(req.Industry)
	if !validIndustries[industry] {
		return nil, errBadField("unknown industry: " + req.Industry)
	}
	return &models.Company{
		Name:               strings.TrimSpace(req.Name),
		RegistrationNumber: req.RegistrationNumber,
		Industry:           industry,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
	}, nil
}

type errBadField string

func (e errBadField) Error() string { return string(e) }
