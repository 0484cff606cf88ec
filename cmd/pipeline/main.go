package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finhealth/pkg/core/agent"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
	"finhealth/pkg/models"
)

// Batch runner: ingests every statement file in a directory for one company,
// processes them, and optionally generates an assessment.
//
//	pipeline -company 3 -dir ./statements -assess -lang en
func main() {
	companyID := flag.Int("company", 0, "company id to attach documents to")
	dir := flag.String("dir", "", "directory of statement files (.csv, .pdf, .html)")
	assess := flag.Bool("assess", false, "generate an assessment after processing")
	lang := flag.String("lang", "en", "assessment summary language")
	flag.Parse()

	if *companyID == 0 || *dir == "" {
		fmt.Println("Usage: pipeline -company <id> -dir <path> [-assess] [-lang en]")
		os.Exit(2)
	}

	godotenv.Load()

	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "gemini"
	}
	agentMgr := agent.NewManager(agentCfg)

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

	if _, err := companyRepo.GetByID(ctx, *companyID); err != nil {
		fmt.Printf("[FATAL] Company %d: %v\n", *companyID, err)
		os.Exit(1)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Printf("[FATAL] Cannot read %s: %v\n", *dir, err)
		os.Exit(1)
	}

	var docIDs []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".pdf" && ext != ".html" && ext != ".htm" {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("[BATCH] skip %s: %v\n", entry.Name(), err)
			continue
		}
		storedPath, err := fileStore.Save(*companyID, entry.Name(), f)
		f.Close()
		if err != nil {
			fmt.Printf("[BATCH] skip %s: %v\n", entry.Name(), err)
			continue
		}

		doc := &models.Document{
			CompanyID:    *companyID,
			DocumentType: statementTypeFromName(entry.Name()),
			FileName:     entry.Name(),
			FilePath:     storedPath,
			FileType:     strings.TrimPrefix(ext, "."),
		}
		if err := documentRepo.Create(ctx, doc); err != nil {
			fmt.Printf("[BATCH] skip %s: %v\n", entry.Name(), err)
			continue
		}
		fmt.Printf("[BATCH] queued %s as %s (doc %d)\n", entry.Name(), doc.DocumentType, doc.ID)
		docIDs = append(docIDs, doc.ID)
	}

	if len(docIDs) == 0 {
		fmt.Println("[BATCH] no statement files found")
		os.Exit(1)
	}

	failures := orchestrator.ProcessDocuments(ctx, *companyID, docIDs)
	fmt.Printf("[BATCH] processed %d documents, %d failures\n", len(docIDs)-len(failures), len(failures))
	for id, err := range failures {
		fmt.Printf("[BATCH]   document %d: %v\n", id, err)
	}

	if metrics, err := metricsRepo.LatestByCompany(ctx, *companyID); err == nil {
		out, _ := json.MarshalIndent(metrics, "", "  ")
		fmt.Printf("[BATCH] latest metrics:\n%s\n", out)
	}

	if *assess {
		assessment, err := orchestrator.RunAssessment(ctx, *companyID, *lang)
		if err != nil {
			fmt.Printf("[FATAL] Assessment failed: %v\n", err)
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(assessment, "", "  ")
		fmt.Printf("[BATCH] assessment:\n%s\n", out)
	}
}

// statementTypeFromName guesses the statement type from filename keywords.
// Ambiguous names default to the income statement.
func statementTypeFromName(name string) models.StatementType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "balance"):
		return models.StatementBalanceSheet
	case strings.Contains(lower, "cash"):
		return models.StatementCashFlow
	default:
		return models.StatementIncome
	}
}
