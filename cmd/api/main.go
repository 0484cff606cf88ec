package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finhealth/pkg/api/assessments"
	"finhealth/pkg/api/companies"
	"finhealth/pkg/api/config"
	"finhealth/pkg/api/documents"
	"finhealth/pkg/api/health"
	"finhealth/pkg/core/agent"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize agent manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "gemini"
	}
	agentMgr := agent.NewManager(agentCfg)

	// Database
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	pool := store.GetPool()

	companyRepo := store.NewCompanyRepo(pool)
	documentRepo := store.NewDocumentRepo(pool)
	metricsRepo := store.NewMetricsRepo(pool)
	assessmentRepo := store.NewAssessmentRepo(pool)
	fileStore := store.NewFileStore(os.Getenv("UPLOAD_DIR"))

	insightSvc := insight.NewService(agentMgr)
	orchestrator := pipeline.NewOrchestrator(companyRepo, documentRepo, metricsRepo, assessmentRepo, insightSvc)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Company endpoints
	companyHandler := companies.NewHandler(companyRepo)
	http.HandleFunc("/api/companies", companyHandler.HandleCompanies)
	http.HandleFunc("/api/companies/", companyHandler.HandleCompany)

	// Document endpoints
	documentHandler := documents.NewHandler(companyRepo, documentRepo, fileStore, orchestrator)
	http.HandleFunc("/api/documents/upload/", documentHandler.HandleUpload)
	http.HandleFunc("/api/documents/process/", documentHandler.HandleProcess)
	http.HandleFunc("/api/documents/company/", documentHandler.HandleCompanyDocuments)
	http.HandleFunc("/api/documents/", documentHandler.HandleDocument)

	// Assessment endpoints
	assessmentHandler := assessments.NewHandler(assessmentRepo, orchestrator)
	http.HandleFunc("/api/assessments/generate", assessmentHandler.HandleGenerate)
	http.HandleFunc("/api/assessments/company/", assessmentHandler.HandleCompanyAssessments)
	http.HandleFunc("/api/assessments/", assessmentHandler.HandleAssessment)

	// Health check
	http.HandleFunc("/api/health", health.Handle)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - GET    /api/health")
	fmt.Println("  - GET    /api/config")
	fmt.Println("  - POST   /api/config/switch")
	fmt.Println("  - GET    /api/companies")
	fmt.Println("  - POST   /api/companies")
	fmt.Println("  - GET    /api/companies/{id}")
	fmt.Println("  - POST   /api/documents/upload/{companyId}")
	fmt.Println("  - POST   /api/documents/process/{id}")
	fmt.Println("  - GET    /api/documents/company/{companyId}")
	fmt.Println("  - POST   /api/assessments/generate")
	fmt.Println("  - GET    /api/assessments/company/{companyId}")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
